// =============================================================================
// internal/output/formatter.go - Output formatting for different formats
// =============================================================================
package output

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// PortScanHost is one target's worth of port-scan results, ready for
// rendering: the sorted open ports plus whatever post-scan scripts ran
// against it.
type PortScanHost struct {
	IP      string   `json:"ip" xml:"ip"`
	Ports   []uint16 `json:"ports" xml:"ports>port"`
	Scripts []string `json:"scripts,omitempty" xml:"scripts>script,omitempty"`
}

// PortScanResult is the rendered form of a completed portscan.Driver run,
// grouped and sorted the way internal/portscan.Aggregate leaves it.
type PortScanResult struct {
	Hosts    []PortScanHost `json:"hosts" xml:"hosts>host"`
	Duration time.Duration  `json:"duration" xml:"duration"`
}

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatCSV   OutputFormat = "csv"
	FormatXML   OutputFormat = "xml"
)

// Formatter handles output formatting for different formats
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a new formatter with the specified format
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// FormatData is a generic method that handles all format types
func (f *Formatter) FormatData(data interface{}, writer io.Writer, tableFormatter func(interface{}, io.Writer) error, csvFormatter func(interface{}, io.Writer) error) error {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(data, writer)
	case FormatCSV:
		if csvFormatter != nil {
			return csvFormatter(data, writer)
		}
		return fmt.Errorf("CSV formatting not implemented for this data type")
	case FormatXML:
		return f.formatXML(data, writer)
	default:
		if tableFormatter != nil {
			return tableFormatter(data, writer)
		}
		return fmt.Errorf("table formatting not implemented for this data type")
	}
}

// Generic JSON formatter
func (f *Formatter) formatJSON(data interface{}, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Generic XML formatter
func (f *Formatter) formatXML(data interface{}, writer io.Writer) error {
	encoder := xml.NewEncoder(writer)
	encoder.Indent("", "  ")
	return encoder.Encode(data)
}

// CSV writer helper
func (f *Formatter) createCSVWriter(writer io.Writer) *csv.Writer {
	csvWriter := csv.NewWriter(writer)
	return csvWriter
}

// Port-scan-specific formatting methods
func (f *Formatter) FormatPortScanResult(result *PortScanResult, writer io.Writer) error {
	return f.FormatData(result, writer, f.formatPortScanResultTable, f.formatPortScanResultCSV)
}

func (f *Formatter) formatPortScanResultTable(data interface{}, writer io.Writer) error {
	result := data.(*PortScanResult)
	fmt.Fprintf(writer, "🔍 Port Scan Results (%d host(s))\n", len(result.Hosts))
	fmt.Fprintf(writer, "⏱️  Duration: %v\n\n", result.Duration)

	if len(result.Hosts) == 0 {
		fmt.Fprintf(writer, "No hosts scanned.\n")
		return nil
	}

	for _, host := range result.Hosts {
		fmt.Fprintf(writer, "🖥️  %s\n", host.IP)
		if len(host.Ports) > 0 {
			for _, port := range host.Ports {
				fmt.Fprintf(writer, "   🟢 %d\n", port)
			}
		} else {
			fmt.Fprintf(writer, "   📝 no open ports found in scanned range\n")
		}
		for _, line := range host.Scripts {
			fmt.Fprintf(writer, "   📜 %s\n", line)
		}
		fmt.Fprintf(writer, "\n")
	}

	return nil
}

func (f *Formatter) formatPortScanResultCSV(data interface{}, writer io.Writer) error {
	result := data.(*PortScanResult)
	csvWriter := f.createCSVWriter(writer)
	defer csvWriter.Flush()

	header := []string{"IP", "Port", "Duration"}
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	for _, host := range result.Hosts {
		if len(host.Ports) > 0 {
			for _, port := range host.Ports {
				row := []string{host.IP, fmt.Sprintf("%d", port), result.Duration.String()}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
		} else {
			row := []string{host.IP, "-", result.Duration.String()}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}
