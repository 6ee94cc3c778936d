package autoimport

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var (
	funcExportRe    = regexp.MustCompile(`(?m)^\s*export\s+(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)`)
	declExportRe    = regexp.MustCompile(`(?m)^\s*export\s+(?:const|let|var|class)\s+([A-Za-z_$][\w$]*)`)
	defaultExportRe = regexp.MustCompile(`(?m)^\s*export\s+default\s`)
	listExportRe    = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]*)\}`)
)

// scriptExts are the file extensions scanned for exports.
var scriptExts = map[string]bool{
	".ts":  true,
	".tsx": true,
	".mts": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
}

func isScript(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	return scriptExts[filepath.Ext(name)]
}

// scanExports extracts the value exports of a script. path is recorded as
// the import source; default exports are named after the file, or after the
// parent directory for index files.
func scanExports(path string, src []byte) []Import {
	text := string(src)
	var imports []Import

	for _, re := range []*regexp.Regexp{funcExportRe, declExportRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			imports = append(imports, Import{Name: m[1], From: path})
		}
	}

	for _, m := range listExportRe.FindAllStringSubmatch(text, -1) {
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSpace(part)
			if part == "" || strings.HasPrefix(part, "type ") {
				continue
			}
			name, as, _ := strings.Cut(part, " as ")
			name, as = strings.TrimSpace(name), strings.TrimSpace(as)
			if as == "default" {
				continue
			}
			if as == name {
				as = ""
			}
			imports = append(imports, Import{Name: name, As: as, From: path})
		}
	}

	if defaultExportRe.MatchString(text) {
		if name := defaultExportName(path); name != "" {
			imports = append(imports, Import{Name: "default", As: name, From: path})
		}
	}
	return imports
}

func defaultExportName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "index" {
		base = filepath.Base(filepath.Dir(path))
	}
	return camelCase(base)
}

// camelCase converts "use-dark_mode" into "useDarkMode".
func camelCase(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
	})

	var sb strings.Builder
	for i, f := range fields {
		if i == 0 {
			sb.WriteString(f)
			continue
		}
		r := []rune(f)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	return sb.String()
}
