package cli

const cardTemplate = `
=== Card {{.CardID}} ===

Note:   {{.NoteID}} ({{.NoteType}})
Status: {{status .StudyStatus}}
Due:    {{.DueValue}}
{{range .NoteFields}}
[{{.Name}}]
{{.Value}}
{{end}}`
