package filter

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseIDList parses a comma-separated event-ID list. Blank elements are
// ignored so trailing commas are harmless.
func ParseIDList(value string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("event id %q: %w", trimmed, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// LoadIDFile reads event IDs from a file, one per line. Blank lines and
// lines starting with '#' are skipped.
func LoadIDFile(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open id list: %w", err)
	}
	defer file.Close()

	var ids []int
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		id, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: event id %q: %w", path, line, trimmed, err)
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read id list: %w", err)
	}
	return ids, nil
}

// CollectIDs merges a comma list and an optional file of IDs, mirroring the
// --event-ids / --event-ids-file flag pair. Returns nil when neither source
// is given, meaning the rule is unconfigured.
func CollectIDs(commaList, filePath string) ([]int, error) {
	var ids []int
	if strings.TrimSpace(commaList) != "" {
		parsed, err := ParseIDList(commaList)
		if err != nil {
			return nil, err
		}
		ids = append(ids, parsed...)
	}
	if strings.TrimSpace(filePath) != "" {
		loaded, err := LoadIDFile(filePath)
		if err != nil {
			return nil, err
		}
		ids = append(ids, loaded...)
	}
	return ids, nil
}
