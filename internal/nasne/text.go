package nasne

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/prometheus/common/expfmt"
)

// TextContentType is the content type of bodies written by WriteText.
var TextContentType = string(expfmt.NewFormat(expfmt.TypeTextPlain))

var labelValueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)

// WriteText renders observations in the Prometheus text format, one TYPE block per observation followed by
// a blank line. Values are written without exponent so byte counts stay readable.
func WriteText(w io.Writer, observations []Observation) error {
	buffered := bufio.NewWriter(w)
	for _, observation := range observations {
		buffered.WriteString("# TYPE ")
		buffered.WriteString(observation.Metric)
		buffered.WriteString(" gauge\n")
		buffered.WriteString(observation.Metric)
		buffered.WriteString(`{name="`)
		labelValueEscaper.WriteString(buffered, observation.Name)
		buffered.WriteString(`"} `)
		buffered.WriteString(strconv.FormatFloat(observation.Value, 'f', -1, 64))
		buffered.WriteString("\n\n")
	}

	return buffered.Flush()
}
