// Package plist renders a job.Descriptor as a launchd property list.
//
// Output is deterministic: the same Descriptor always produces the same bytes.
package plist

import (
	"bytes"
	"encoding/xml"
	"strings"
	"text/template"

	"github.com/aatumaykin/launchify/internal/job"
)

// Extension is the file extension launchd expects for agent definitions.
const Extension = ".plist"

const documentTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{xml .Label}}</string>
    <key>Program</key>
    <string>{{xml .ExecutablePath}}</string>
    <key>ProgramArguments</key>
    <array>
{{- range .ProgramArguments}}
        <string>{{xml .}}</string>
{{- end}}
    </array>
    <key>WorkingDirectory</key>
    <string>{{xml .WorkingDirectory}}</string>
    <key>StandardOutPath</key>
    <string>{{xml .StdoutLogPath}}</string>
    <key>StandardErrorPath</key>
    <string>{{xml .StderrLogPath}}</string>
    <key>StartInterval</key>
    <integer>{{.Interval.Seconds}}</integer>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`

var document = template.Must(template.New("plist").Funcs(template.FuncMap{
	"xml": escape,
}).Parse(documentTemplate))

// Render returns the property list document for d.
func Render(d *job.Descriptor) []byte {
	var buf bytes.Buffer
	// The template only reads fields and methods that cannot fail, and
	// bytes.Buffer writes never fail.
	if err := document.Execute(&buf, d); err != nil {
		panic("plist: render: " + err.Error())
	}
	return buf.Bytes()
}

// Filename returns the agent file name for label.
func Filename(label string) string {
	return label + Extension
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
