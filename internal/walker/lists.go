package walker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tidwall/jsonc"

	"github.com/kiwi-machine/assetgen/internal/errs"
)

// LoadIgnoreList reads a flat JSON array of filenames. Comments and trailing
// commas are tolerated.
func LoadIgnoreList(path string) ([]string, error) {
	return readStringArray(path)
}

// ReadFileList reads the declared asset list listName inside dir and returns
// the listed paths joined to dir, sorted.
func ReadFileList(dir, listName string) ([]string, error) {
	if listName == "" {
		listName = FileListName
	}
	items, err := readStringArray(filepath.Join(dir, listName))
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = filepath.Join(dir, filepath.FromSlash(item))
	}
	slices.Sort(paths)
	return paths, nil
}

func readStringArray(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrMissingInput, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", errs.ErrIO, path, err)
	}

	var raw any
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", errs.ErrMalformedInput, path, err)
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: JSON content is not an array", errs.ErrMalformedInput, path)
	}
	out := make([]string, 0, len(arr))
	for i, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s: element %d is not a string", errs.ErrMalformedInput, path, i)
		}
		out = append(out, s)
	}
	return out, nil
}
