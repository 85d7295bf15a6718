// =============================================================================
// internal/cli/portscan_commands.go - Port scan CLI command
// =============================================================================
package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/bryanCE/gscan/internal/addresses"
	"github.com/bryanCE/gscan/internal/dns"
	"github.com/bryanCE/gscan/internal/output"
	"github.com/bryanCE/gscan/internal/portscan"
	"github.com/bryanCE/gscan/internal/scripts"
	"github.com/spf13/cobra"
)

// NewPortScanCommand creates the scan subcommand: the connect-scan engine
// in internal/portscan wired to address/port parsing, DNS resolution, the
// FD-budget adapter, and the post-scan script runner.
func NewPortScanCommand() *cobra.Command {
	var (
		portsFlag        string
		rangeFlag        string
		batchSizeFlag    uint16
		timeoutFlag      uint
		triesFlag        uint
		ulimitFlag       uint64
		scanOrderFlag    string
		excludePortsFlag string
		greppableFlag    bool
		accessibleFlag   bool
		nameserverFlag   string
		scriptsFlag      string
		formatFlag       string
	)

	cmd := &cobra.Command{
		Use:   "scan [addresses...]",
		Short: "Scan hosts for open TCP ports",
		Long: `Find open TCP ports across one or more hosts using a connect scan.
Targets may be literal IPs, CIDR blocks, or hostnames to be resolved first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bench := portscan.NewBenchmark()

			resolveTimer := portscan.StartTimer("resolution")
			ips, resolveErrs := resolveTargets(cmd.Context(), args, nameserverFlag)
			resolveTimer.End()
			bench.Push(resolveTimer)

			for _, err := range resolveErrs {
				fmt.Fprintf(os.Stderr, "[>] %v\n", err)
			}
			if len(ips) == 0 {
				fmt.Fprintln(os.Stderr, "[>] no IPs could be resolved, aborting scan.")
				return fmt.Errorf("no IPs could be resolved")
			}

			portSpec := portsFlag
			if rangeFlag != "" {
				portSpec = rangeFlag
			}
			strategy, err := buildStrategy(portSpec, scanOrderFlag)
			if err != nil {
				return err
			}

			excludePorts, err := addresses.ParseExcludePorts(excludePortsFlag)
			if err != nil {
				return err
			}

			var userUlimit *uint64
			if ulimitFlag > 0 {
				userUlimit = &ulimitFlag
			}

			budgetTimer := portscan.StartTimer("ulimit adjustment")
			budget, err := portscan.ReconcileFDBudget(portscan.DefaultRlimitSource(), batchSizeFlag, userUlimit)
			budgetTimer.End()
			bench.Push(budgetTimer)
			if err != nil {
				return err
			}
			for _, diag := range budget.Diagnostics {
				fmt.Fprintf(os.Stderr, "[>] %s\n", diag)
			}

			driverCfg := portscan.Config{
				IPs:          ips,
				BatchSize:    budget.EffectiveBatch,
				Timeout:      time.Duration(timeoutFlag) * time.Millisecond,
				Tries:        triesFlag,
				Greppable:    greppableFlag,
				Strategy:     strategy,
				Accessible:   accessibleFlag,
				ExcludePorts: excludePorts,
			}
			if !greppableFlag {
				driverCfg.OnOpen = func(e portscan.Endpoint) {
					fmt.Printf("Open %s\n", e)
				}
			}

			driver, err := portscan.NewDriver(driverCfg)
			if err != nil {
				return err
			}

			scanTimer := portscan.StartTimer("scan")
			openSet, err := driver.Run(cmd.Context())
			scanTimer.End()
			bench.Push(scanTimer)
			if err != nil {
				return err
			}

			grouped := portscan.Aggregate(openSet, ips)

			required := scripts.RequiredDefault
			if strings.EqualFold(scriptsFlag, "none") {
				required = scripts.RequiredNone
			}

			scriptTimer := portscan.StartTimer("scripts")
			result := &output.PortScanResult{}
			for _, ip := range ips {
				ports := grouped[ip]
				host := output.PortScanHost{IP: ip, Ports: ports}
				if len(ports) == 0 {
					fmt.Fprintf(os.Stderr,
						"[>] looks like I didn't find any open ports for %s. this is usually caused by a high batch size.\n", ip)
				} else {
					host.Scripts = scripts.Run(cmd.Context(), required, ip, ports)
				}
				result.Hosts = append(result.Hosts, host)
			}
			scriptTimer.End()
			bench.Push(scriptTimer)
			result.Duration = scanTimer.Duration()

			if !greppableFlag {
				fmt.Fprintf(os.Stderr, "[>] %s\n", bench.Summary())
			}

			var format output.OutputFormat
			switch strings.ToLower(formatFlag) {
			case "json":
				format = output.FormatJSON
			case "csv":
				format = output.FormatCSV
			case "xml":
				format = output.FormatXML
			default:
				format = output.FormatTable
			}

			formatter := output.NewFormatter(format)
			return formatter.FormatPortScanResult(result, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&portsFlag, "ports", "p", "1-1000", "Ports to scan: a range \"lo-hi\" or comma list")
	cmd.Flags().StringVarP(&rangeFlag, "range", "r", "", "Port range to scan, overriding --ports when set")
	cmd.Flags().Uint16VarP(&batchSizeFlag, "batch-size", "b", 3000, "Number of ports to scan concurrently per batch")
	cmd.Flags().UintVarP(&timeoutFlag, "timeout", "t", 1000, "Connect timeout in milliseconds")
	cmd.Flags().UintVar(&triesFlag, "tries", 1, "Number of scan attempts; ports not found open are probed again on each later attempt")
	cmd.Flags().Uint64Var(&ulimitFlag, "ulimit", 0, "Set a custom file descriptor limit before scanning")
	cmd.Flags().StringVar(&scanOrderFlag, "scan-order", "serial", "Order to scan ports in: serial or random")
	cmd.Flags().StringVar(&excludePortsFlag, "exclude-ports", "", "Comma-separated ports to exclude from the scan")
	cmd.Flags().BoolVarP(&greppableFlag, "greppable", "g", false, "Suppress interactive output, suitable for piping")
	cmd.Flags().BoolVar(&accessibleFlag, "accessible", false, "Accessible-output hint, recorded in the scan config; the rendered output is the same")
	cmd.Flags().StringVarP(&nameserverFlag, "nameserver", "n", "8.8.8.8", "Nameserver to use when resolving hostname targets")
	cmd.Flags().StringVar(&scriptsFlag, "scripts", "default", "Post-scan scripts to run: default or none")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format (table, json, csv, xml)")

	return cmd
}

// resolveTargets expands every CLI target (IP, CIDR, or hostname) into a
// flat, deduplicated list of IP strings.
func resolveTargets(ctx context.Context, targets []string, nameserver string) ([]string, []error) {
	var literal, hostnames []string
	for _, t := range targets {
		if strings.Contains(t, "/") {
			expanded, err := addresses.ExpandTarget(t)
			if err != nil {
				hostnames = append(hostnames, t)
				continue
			}
			literal = append(literal, expanded...)
			continue
		}
		hostnames = append(hostnames, t)
	}

	resolved, errs := dns.ResolveHosts(ctx, hostnames, nameserver)
	all := append(literal, resolved...)
	addresses.SortIPs(all)
	return dedupe(all), errs
}

func dedupe(ips []string) []string {
	seen := make(map[string]struct{}, len(ips))
	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		if _, ok := seen[ip]; ok {
			continue
		}
		seen[ip] = struct{}{}
		out = append(out, ip)
	}
	return out
}

func buildStrategy(portsFlag, scanOrder string) (portscan.PortStrategy, error) {
	spec, err := addresses.ParsePortSpec(portsFlag)
	if err != nil {
		return nil, err
	}

	random := strings.EqualFold(scanOrder, "random")
	seed := rand.Uint64()

	if spec.IsRange {
		if random {
			return portscan.NewRandomRange(spec.Lo, spec.Hi, seed)
		}
		return portscan.NewSerialRange(spec.Lo, spec.Hi)
	}

	if random {
		return portscan.NewRandomList(spec.List, seed), nil
	}
	return portscan.NewSerialList(spec.List), nil
}
