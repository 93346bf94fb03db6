package rendering

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// WriteFile writes content to path, creating or truncating it. The file is always
// closed and a failed close is reported like a failed write.
func WriteFile(path, content string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to create %s", path), Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, &RenderError{Message: fmt.Sprintf("failed to close %s", path), Cause: cerr})
		}
	}()

	if _, err := f.WriteString(content); err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}
	return nil
}

// ReadXYZ reads element labels and flat coordinates from an XYZ file. Both the full
// format (atom count and comment lines first) and the headerless form written by
// FormatXYZ are accepted; lines that are not "label x y z" are ignored.
func ReadXYZ(path string) (names []string, coords []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xyz file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read xyz file %s: %w", path, err)
	}

	// skip the atom count and comment lines of the full format
	if len(lines) > 0 {
		if _, convErr := strconv.Atoi(strings.TrimSpace(lines[0])); convErr == nil {
			lines = lines[min(2, len(lines)):]
		}
	}

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 4 {
			continue
		}
		atom := make([]float64, 0, 3)
		for _, field := range fields[1:] {
			c, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid coordinate %q in %s: %w", field, path, err)
			}
			atom = append(atom, c)
		}
		names = append(names, fields[0])
		coords = append(coords, atom...)
	}
	return names, coords, nil
}
