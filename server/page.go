package server

import "html/template"

const DefaultNotFound = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Page not found</title></head>
<body><h1>Page not found</h1></body>
</html>
`

// JQueryScript is included before any queued script.
const JQueryScript = "vendor/jquery"

var page = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
{{- range .Scripts }}
<script type="text/javascript" src="{{ $.Assets }}/{{ . }}.js"></script>
{{- end }}
</head>
<body>
{{ .Gallery }}
</body>
</html>
`))

type pageData struct {
	Title   string
	Assets  string
	Scripts []string
	Gallery template.HTML
}

type scripts []string

func (s *scripts) QueueScript(path string) {
	if len(*s) == 0 {
		*s = append(*s, JQueryScript)
	}

	for _, queued := range *s {
		if queued == path {
			return
		}
	}

	*s = append(*s, path)
}
