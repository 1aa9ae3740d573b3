package cli

import (
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"opinfo/internal/operator/metrics"
	"opinfo/internal/operator/models"
	"opinfo/internal/operator/service"
	"opinfo/internal/platform/dispatcher"
)

type identityFlags struct {
	mccmnc       string
	imsi         string
	iccid        string
	sid          string
	nid          string
	operatorName string
}

type resolveResult struct {
	Notifications int            `json:"notifications"`
	Profile       models.Profile `json:"profile"`
}

// countingObserver tallies delivered change events.
type countingObserver struct {
	events int
}

func (o *countingObserver) OnOperatorChanged() { o.events++ }

func resolveCommand() *cobra.Command {
	var (
		flags       identityFlags
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve identity values to an operator profile",
		Long: `Feed identity values into a fresh engine and print the resolved profile as
JSON together with the number of change notifications observers received.

Values are applied in the order MCCMNC, IMSI, ICCID, SID, NID, operator name.

Examples:
  # Resolve by network code
  opinfo resolve --mccmnc 310260

  # Resolve an MVNO from SIM data
  opinfo resolve --imsi 310260000000000 --iccid 8901260000000000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, flags, showMetrics)
		},
	}

	cmd.Flags().StringVar(&flags.mccmnc, "mccmnc", "", "Network MCCMNC reported by the modem")
	cmd.Flags().StringVar(&flags.imsi, "imsi", "", "Subscriber IMSI")
	cmd.Flags().StringVar(&flags.iccid, "iccid", "", "SIM card ICCID")
	cmd.Flags().StringVar(&flags.sid, "sid", "", "CDMA system identifier")
	cmd.Flags().StringVar(&flags.nid, "nid", "", "CDMA network identifier")
	cmd.Flags().StringVar(&flags.operatorName, "name", "", "Operator name reported by the network")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print engine metrics in Prometheus text format after the profile")

	return cmd
}

func runResolve(cmd *cobra.Command, flags identityFlags, showMetrics bool) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	registry := prometheus.NewRegistry()
	queue := dispatcher.New()
	engine, err := service.New(env.source, queue,
		service.WithLogger(env.logger),
		service.WithMetrics(metrics.New(registry)),
	)
	if err != nil {
		return err
	}
	defer engine.Close()

	if !engine.Init(cmd.Context()) {
		return fmt.Errorf("no operator database could be loaded")
	}
	queue.DispatchPending()

	observer := &countingObserver{}
	engine.AddObserver(observer)

	engine.UpdateMCCMNC(flags.mccmnc)
	engine.UpdateIMSI(flags.imsi)
	engine.UpdateICCID(flags.iccid)
	engine.UpdateSID(flags.sid)
	engine.UpdateNID(flags.nid)
	engine.UpdateOperatorName(flags.operatorName)
	queue.DispatchPending()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(resolveResult{
		Notifications: observer.events,
		Profile:       engine.Profile(),
	}); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	if showMetrics {
		families, err := registry.Gather()
		if err != nil {
			return fmt.Errorf("gather metrics: %w", err)
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(cmd.OutOrStdout(), mf); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
		}
	}
	return nil
}
