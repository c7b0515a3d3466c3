package typescript

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/fsdefs/errors"
)

// ModuleExport is one generated TypeScript file and the types it declares
type ModuleExport struct {
	// FileName is the generated file, e.g. game_protocol.ts
	FileName  string
	TypeNames []string
}

// IndexFileName is the barrel export written next to generated modules
const IndexFileName = "index.ts"

// GenerateIndex renders a barrel export that re-exports every module's types.
func GenerateIndex(exports []ModuleExport) string {
	var sb strings.Builder

	sb.WriteString("// Generated by fsdefs. Do not edit.\n")
	sb.WriteString("/* eslint-disable */\n")

	sorted := append([]ModuleExport(nil), exports...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FileName < sorted[j].FileName
	})

	for _, exp := range sorted {
		if len(exp.TypeNames) == 0 {
			continue
		}

		names := append([]string(nil), exp.TypeNames...)
		sort.Strings(names)

		sb.WriteString("\nexport type {\n")
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  %s,\n", name))
		}
		sb.WriteString(fmt.Sprintf("} from './%s';\n", strings.TrimSuffix(exp.FileName, ".ts")))
	}
	return sb.String()
}

// WriteIndexFile writes index.ts into outputDir and returns its path.
func WriteIndexFile(outputDir string, exports []ModuleExport, perm os.FileMode) (string, error) {
	indexPath := filepath.Join(outputDir, IndexFileName)
	if err := os.WriteFile(indexPath, []byte(GenerateIndex(exports)), perm); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", IndexFileName)
	}
	return indexPath, nil
}
