package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/eligibility-gateway/internal/core/domain"
	"github.com/DanielPopoola/eligibility-gateway/internal/core/service"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type payerFlags struct {
	name           string
	code           string
	required       []string
	optional       []string
	dateFormat     string
	genderRequired bool
}

func (p *payerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.name, "payer-name", "", "Payer name")
	cmd.Flags().StringVar(&p.code, "payer-code", "", "Payer ID sent in NM1*PR")
	cmd.Flags().StringSliceVar(&p.required, "required", nil, "Fields the payer requires (first_name,last_name,dob,member_id,ssn,gender)")
	cmd.Flags().StringSliceVar(&p.optional, "optional", nil, "Fields the payer accepts but does not require")
	cmd.Flags().StringVar(&p.dateFormat, "date-format", domain.DateFormatSingle, "Service date qualifier: D8 or RD8")
	cmd.Flags().BoolVar(&p.genderRequired, "gender-required", false, "Payer requires gender")
}

func (p *payerFlags) config() domain.PayerConfig {
	return domain.PayerConfig{
		Name:           p.name,
		PayerCode:      p.code,
		RequiredFields: p.required,
		OptionalFields: p.optional,
		DateFormat:     p.dateFormat,
		GenderRequired: p.genderRequired,
	}
}

func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD: %w", flag, err)
	}
	return t, nil
}

func newCheckCmd() *cobra.Command {
	var (
		payer       payerFlags
		query       domain.PatientQuery
		dob         string
		serviceDate string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one eligibility inquiry with an inline payer and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if query.DateOfBirth, err = parseDate("dob", dob); err != nil {
				return err
			}
			if query.ServiceDate, err = parseDate("service-date", serviceDate); err != nil {
				return err
			}

			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			transport, err := newTransport(cfg, logger)
			if err != nil {
				return err
			}

			svc := service.NewEligibilityService(newBuilder(cfg), transport, newEngine(cfg), nil, nil, logger)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
			defer cancelTimeout()

			result, checkErr := svc.CheckEligibility(ctx, query, payer.config())
			if result != nil {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("error writing result: %w", err)
				}
			}
			return checkErr
		},
	}

	payer.register(cmd)
	_ = cmd.MarkFlagRequired("payer-name")
	_ = cmd.MarkFlagRequired("payer-code")

	cmd.Flags().StringVar(&query.FirstName, "first-name", "", "Patient first name")
	cmd.Flags().StringVar(&query.LastName, "last-name", "", "Patient last name")
	cmd.Flags().StringVar(&query.MiddleName, "middle-name", "", "Patient middle name")
	cmd.Flags().StringVar(&dob, "dob", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&query.MemberID, "member-id", "", "Payer member ID")
	cmd.Flags().StringVar(&query.SSN, "ssn", "", "Social security number, digits only")
	cmd.Flags().StringVar(&query.Gender, "gender", "", "M, F or U")
	cmd.Flags().StringVar(&serviceDate, "service-date", "", "Date of service (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringSliceVar(&query.ServiceTypes, "service-type", nil, "Additional EQ service type codes")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Overall deadline across all clearinghouses")
	_ = cmd.MarkFlagRequired("dob")

	return cmd
}
