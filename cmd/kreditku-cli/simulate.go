package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"kreditku_backend/internals/features/simulations/calculator"
)

// parseTenors: "12=3,24=4.5,36=5" → opsi tenor (semua aktif)
func parseTenors(raw string) ([]calculator.TenorOption, error) {
	var out []calculator.TenorOption
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		months, rate, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("format tenor %q, harus <bulan>=<bunga%%>", part)
		}
		m, err := strconv.Atoi(strings.TrimSpace(months))
		if err != nil {
			return nil, fmt.Errorf("tenor %q bukan angka", months)
		}
		r, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
		if err != nil {
			return nil, fmt.Errorf("bunga %q bukan angka", rate)
		}
		out = append(out, calculator.TenorOption{Tenor: m, AnnualRate: r})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("minimal satu tenor")
	}
	return out, nil
}

type simulateOutput struct {
	OTR                int64            `json:"otr"`
	Mode               calculator.Mode  `json:"mode"`
	Amount             int64            `json:"amount"`
	MinimumDownPayment int64            `json:"minimum_down_payment"`
	Rows               []calculator.Row `json:"rows"`
}

func writeTable(w io.Writer, out simulateOutput) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TENOR\tBUNGA %\tTDP\tANGSURAN\t")
	for _, r := range out.Rows {
		flag := ""
		if r.DownPayment < out.MinimumDownPayment {
			flag = " *"
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%d%s\t%d\t\n", r.Tenor, r.AnnualRate, r.DownPayment, flag, r.Installment)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "minimum TDP: %d (* = di bawah minimum)\n", out.MinimumDownPayment)
	return err
}

func simulateCmd() *cobra.Command {
	var (
		otr       int64
		mode      string
		amount    int64
		dpPercent float64
		tenors    string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Hitung simulasi kredit tanpa server/DB",
		Example: `  kreditku-cli simulate --otr 30000000 --mode tdp --amount 6000000 --tenors 12=3,36=5
  kreditku-cli simulate --otr 30000000 --mode angsuran --amount 1000000 --dp-percent 20 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseTenors(tenors)
			if err != nil {
				return err
			}
			m := calculator.Mode(strings.ToLower(strings.TrimSpace(mode)))
			rows, err := calculator.Simulate(calculator.SimulationInput{
				OTR:                otr,
				Mode:               m,
				Amount:             amount,
				DownPaymentPercent: dpPercent,
				Options:            opts,
			})
			if err != nil {
				return err
			}
			out := simulateOutput{
				OTR:                otr,
				Mode:               m,
				Amount:             amount,
				MinimumDownPayment: calculator.MinimumDownPayment(otr, dpPercent),
				Rows:               rows,
			}

			if asJSON {
				b, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			return writeTable(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Int64Var(&otr, "otr", 0, "harga OTR (rupiah)")
	cmd.Flags().StringVar(&mode, "mode", string(calculator.ModeTDP), "tdp | angsuran")
	cmd.Flags().Int64Var(&amount, "amount", 0, "TDP (mode tdp) atau target angsuran (mode angsuran)")
	cmd.Flags().Float64Var(&dpPercent, "dp-percent", 0, "minimum TDP program (persen)")
	cmd.Flags().StringVar(&tenors, "tenors", "12=3,24=4,36=5", "daftar <bulan>=<bunga%>")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	_ = cmd.MarkFlagRequired("otr")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
