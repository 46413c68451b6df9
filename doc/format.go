package doc

import (
	"fmt"
	"strings"

	"github.com/rubiojr/curly/compiler"
)

// FormatFile formats a FileDoc for terminal display. Undocumented
// functions are left out.
func FormatFile(fd *FileDoc) string {
	var sb strings.Builder
	if fd.Doc != "" {
		sb.WriteString(fd.Doc)
		sb.WriteString("\n\n")
	}
	for _, f := range fd.Funcs {
		if f.Doc == "" {
			continue
		}
		sb.WriteString(FormatSymbol(f.Doc, f.Signature()))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatSymbol formats a single symbol: its signature, then the doc text
// indented by four spaces.
func FormatSymbol(docStr, signature string) string {
	var sb strings.Builder
	sb.WriteString(signature)
	sb.WriteString("\n")
	if docStr != "" {
		sb.WriteString("    ")
		sb.WriteString(strings.ReplaceAll(docStr, "\n", "\n    "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatSignature formats one allow-listed call with its accepted forms.
func FormatSignature(sig *compiler.Signature) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", sig.Usage)
	for _, f := range sig.Forms {
		fmt.Fprintf(&sb, "    %s%s\n", sig.Name, f)
	}
	return sb.String()
}

// FormatAllSignatures lists every checked call.
func FormatAllSignatures() string {
	var sb strings.Builder
	sb.WriteString("Checked calls (module.member):\n")
	for _, sig := range compiler.Signatures() {
		fmt.Fprintf(&sb, "  %-10s %s\n", sig.Name, sig.Usage)
	}
	return sb.String()
}
