package server

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

type pageData struct {
	Strategies []string
	Default    string
	Error      string
	Result     *PageResult
}

var page = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Resume Details Extractor</title>
<style>
body{font-family:sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem}
fieldset{margin-bottom:1rem}
table{border-collapse:collapse;width:100%}
td,th{border:1px solid #ccc;padding:.3rem .5rem;text-align:left}
.error{color:#b00020}
.warn{color:#8a6d00}
pre{background:#f5f5f5;padding:.5rem}
</style>
</head>
<body>
<h1>Resume Details Extractor</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}

<fieldset>
<legend>Single Resume Upload</legend>
<form method="post" action="/extract/file" enctype="multipart/form-data">
<input type="file" name="resume" accept=".pdf,.docx">
{{template "strategy" .}}
<button type="submit">Submit</button>
</form>
</fieldset>

<fieldset>
<legend>Folder Upload</legend>
<form method="post" action="/extract/folder">
<input type="text" name="folder" placeholder="Enter the folder path containing resumes" size="60">
{{template "strategy" .}}
<button type="submit">Submit</button>
</form>
</fieldset>

{{with .Result}}
<h2>Extracted details ({{.Strategy}})</h2>
{{range .Warnings}}<p class="warn">{{.}}</p>{{end}}
{{if .Rows}}
<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
</table>
{{end}}
{{if .Failures}}
<h3>Failed files</h3>
<ul>{{range .Failures}}<li class="error">{{.Path}} [{{.Status}}]: {{.Message}}</li>{{end}}</ul>
{{end}}
{{if .Progress}}<pre>{{range .Progress}}{{.}}
{{end}}</pre>{{end}}
{{if .SaveError}}<p class="error">Saving output failed: {{.SaveError}}</p>{{end}}
{{if .Downloads}}
<h3>Downloads</h3>
<ul>{{range .Downloads}}<li><a href="/download/{{.}}">{{.}}</a></li>{{end}}</ul>
{{end}}
{{end}}
</body>
</html>
{{define "strategy"}}<select name="strategy">{{$d := .Default}}{{range .Strategies}}<option value="{{.}}"{{if eq . $d}} selected{{end}}>{{.}}</option>{{end}}</select>{{end}}
`))

func (s *Server) render(c *fiber.Ctx, status int, data pageData) error {
	data.Default = string(s.cfg.DefaultStrategy)
	for _, st := range constants.StrategiesAsStringSlice() {
		if _, ok := s.runners[constants.Strategy(st)]; ok {
			data.Strategies = append(data.Strategies, st)
		}
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
