package badges

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const badgeTemplate = `
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="{{num .Width}}" height="{{num .Height}}">
  {{if .WholeTitle}}<title>{{xml .WholeTitle}}</title>{{end}}
  {{if .Rounded}}
  <linearGradient id="smooth" x2="0" y2="100%">
    <stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
    <stop offset="1" stop-opacity=".1"/>
  </linearGradient>
  {{end}}
  <clipPath id="round">
    <rect width="{{num .Width}}" height="{{num .Height}}" rx="{{ternary "3" "0" .Rounded}}" fill="#fff"/>
  </clipPath>
  <g clip-path="url(#round)">
    {{range .Segments}}
    <rect x="{{num .X}}" width="{{num .Width}}" height="{{num $.Height}}" fill="{{xml .Color}}"/>
    {{end}}
    {{if .Rounded}}<rect width="{{num .Width}}" height="{{num .Height}}" fill="url(#smooth)"/>{{end}}
  </g>
  <g fill="#fff" text-anchor="middle" font-family="DejaVu Sans,Verdana,Geneva,sans-serif" text-rendering="geometricPrecision" font-size="110">
    {{range .Segments}}
    {{if .Image}}
    <image x="{{num .Image.X}}" y="{{num .Image.Y}}" width="{{num .Image.Width}}" height="{{num .Image.Height}}" xlink:href="{{xml .Image.Href}}"/>
    {{end}}
    {{if .Text}}{{template "text" .}}{{end}}
    {{end}}
  </g>
  {{if .WholeLink}}
  <a xlink:href="{{xml .WholeLink}}">
    <rect width="{{num .Width}}" height="{{num .Height}}" fill="rgba(0,0,0,0)"/>
  </a>
  {{else}}
  {{range .Segments}}{{template "overlay" (dict "Segment" . "Height" $.Height)}}{{end}}
  {{end}}
</svg>

{{define "text"}}
<text aria-hidden="true" x="{{num .TextX}}" y="150" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="{{num .TextLength}}">{{xml .Text}}</text>
<text x="{{num .TextX}}" y="140" transform="scale(.1)" textLength="{{num .TextLength}}">{{xml .Text}}</text>
{{end}}

{{define "overlay"}}
{{with .Segment}}
{{if .Link}}
<a xlink:href="{{xml .Link}}">
  {{if .Title}}<title>{{xml .Title}}</title>{{end}}
  <rect x="{{num .X}}" width="{{num .Width}}" height="{{num $.Height}}" fill="rgba(0,0,0,0)"/>
</a>
{{else if .Title}}
<g>
  <title>{{xml .Title}}</title>
  <rect x="{{num .X}}" width="{{num .Width}}" height="{{num $.Height}}" fill="rgba(0,0,0,0)"/>
</g>
{{end}}
{{end}}
{{end}}
`

var badgeFuncs = template.FuncMap{
	"num": formatNumber,
	"xml": escapeXML,
}

var compiledTemplate = template.Must(
	template.New("badge").Funcs(sprig.TxtFuncMap()).Funcs(badgeFuncs).Parse(badgeTemplate),
)

// render fills the badge template with l.
func render(l *layout) (string, error) {
	buffer := &bytes.Buffer{}
	if err := compiledTemplate.Execute(buffer, l); err != nil {
		return "", fmt.Errorf("executing badge template: %w", err)
	}
	return buffer.String(), nil
}

// formatNumber rounds to 4 decimals and drops trailing zeros.
func formatNumber(value float64) string {
	rounded := math.Round(value*10000) / 10000
	if rounded == 0 {
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func escapeXML(value string) (string, error) {
	buffer := &bytes.Buffer{}
	if err := xml.EscapeText(buffer, []byte(value)); err != nil {
		return "", err
	}
	return buffer.String(), nil
}
