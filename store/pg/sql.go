package pg

import (
	"strings"
	"text/template"
)

var (
	sqlTemplateFunctions = template.FuncMap{
		"containsPattern": containsPattern,
		"quoteString":     quoteString,
	}

	sqlDiagramQuery *template.Template = newSqlTemplate("diagram_query.sql")

	likeReplacer = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
)

func newSqlTemplate(name string) *template.Template {
	return template.Must(template.New(name).Funcs(sqlTemplateFunctions).ParseFS(resources, "sql/"+name))
}

// containsPattern returns a quoted LIKE pattern, which matches any string that contains the value.
func containsPattern(value string) string {
	return quoteString("%" + likeReplacer.Replace(value) + "%")
}

func quoteString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
