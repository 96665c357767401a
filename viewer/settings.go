package viewer

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/olekukonko/tablewriter"

	"brdf-viewer/input"
	"brdf-viewer/shading"
)

// FormatSettings renders the shading parameters as a table.
func FormatSettings(p shading.Params) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Setting", "Value"})
	table.Append([]string{"Distribution (D)", p.Distribution.String()})
	table.Append([]string{"Geometric (G)", onOff(p.UseGeometric)})
	table.Append([]string{"Fresnel (F)", onOff(p.UseFresnel)})
	table.Append([]string{"1/pi", onOff(p.UsePi)})
	table.Append([]string{"4(n.l)(n.v)", onOff(p.UseDenominator)})
	table.Append([]string{"Roughness", fmt.Sprintf("%.3f", p.Roughness)})
	table.Append([]string{"Ambient", fmt.Sprintf("%.2f", p.Ambient)})
	table.Append([]string{"Diffuse", fmt.Sprintf("%.2f", p.Diffuse)})
	table.Append([]string{"Specular", fmt.Sprintf("%.2f", p.Specular)})
	table.Append([]string{"Surface color", fmtColor(p.SurfaceColor)})
	table.Append([]string{"Fresnel preset", fmt.Sprintf("%s %s", p.FresnelName(), fmtColor(p.Fresnel))})
	table.Render()
	return buf.String()
}

// FormatControls renders the key bindings as a table.
func FormatControls() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Keys", "Action"})
	for _, h := range input.Help() {
		table.Append([]string{h.Keys, h.Action})
	}
	table.Render()
	return buf.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func fmtColor(c mgl32.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", c[0], c[1], c[2])
}
