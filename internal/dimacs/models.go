package dimacs

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// ParseModels reads a models file: one satisfying assignment per line, each
// a whitespace-delimited list of signed DIMACS literals terminated by "0".
// Each model records, in line order, whether each literal is positive.
func ParseModels(filename string) ([][]bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var models [][]bool
	scanner := bufio.NewScanner(file)
	for lineNo := 0; scanner.Scan(); {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		model := make([]bool, 0, len(fields))
		for _, f := range fields {
			if f == "0" {
				continue
			}
			l, err := strconv.Atoi(f)
			if err != nil {
				return nil, newParseError(lineNo, "malformed literal %q", f)
			}
			model = append(model, l > 0)
		}
		models = append(models, model)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return models, nil
}
