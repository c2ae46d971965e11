package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"medicsense-client/internal/bootstrap"
	"medicsense-client/internal/cli"
	"medicsense-client/internal/config"
	"medicsense-client/internal/service"
	"medicsense-client/pkg/database"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medicsense",
		Short: "MedicSense AI health assistant",
	}

	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(emergencyCmd())
	rootCmd.AddCommand(vitalsCmd())
	rootCmd.AddCommand(appointmentsCmd())
	rootCmd.AddCommand(medsCmd())
	rootCmd.AddCommand(interactionCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(imageCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(sessionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup builds the container shared by every command. The returned cleanup
// flushes logs; callers defer it.
func setup(ctx context.Context) (*bootstrap.Container, func(), error) {
	cfg := config.Load()

	db, err := database.NewLocalDB(cfg.Storage.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open local store: %w", err)
	}

	renderer := cli.NewRenderer(os.Stdout)
	container, err := bootstrap.NewContainer(ctx, db, cfg, renderer)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = container.Logger.Sync()
	}
	return container, cleanup, nil
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c.Refresher.Start(ctx)
			defer c.Refresher.Stop()

			repl := cli.NewChatREPL(c.Chat, c.Transcript, c.Session, c.Refresher, c.Renderer, os.Stdin, os.Stdout)
			return repl.Run(ctx)
		},
	}
}

func emergencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emergency",
		Short: "Send the emergency help shortcut",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := c.Chat.SendEmergency(ctx)
			if err != nil {
				return err
			}
			fmt.Println(resp.Response)
			return nil
		},
	}
}

func vitalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vitals",
		Short: "Record vitals and view your weekly pattern",
	}

	var input service.VitalsInput
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record a set of measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return c.Health.RecordVitals(ctx, input)
		},
	}
	recordCmd.Flags().StringVar(&input.Temperature, "temperature", "", "body temperature")
	recordCmd.Flags().StringVar(&input.BloodPressure, "bp", "", "blood pressure, e.g. 120/80")
	recordCmd.Flags().StringVar(&input.HeartRate, "heart-rate", "", "heart rate in bpm")
	recordCmd.Flags().StringVar(&input.OxygenSaturation, "spo2", "", "oxygen saturation in %")
	recordCmd.Flags().StringVar(&input.Weight, "weight", "", "weight")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the weekly symptom pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			pattern, err := c.Health.History(ctx)
			if err != nil {
				return err
			}
			if pattern == nil {
				fmt.Println("No health history yet.")
				return nil
			}
			fmt.Printf("Pattern: %s (reported %d times, trend: %s)\n", pattern.Pattern, pattern.Frequency, pattern.SeverityTrend)
			for _, sc := range pattern.CommonSymptoms() {
				fmt.Printf("  %s: %d\n", sc.Symptom, sc.Count)
			}
			if pattern.Recommendation != "" {
				fmt.Println("Recommendation:", pattern.Recommendation)
			}
			return nil
		},
	}

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Show locally recorded measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := c.Health.RecentVitals(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No vitals recorded yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s  temp=%s bp=%s hr=%s spo2=%s weight=%s\n",
					e.CreatedAt.Format("2006-01-02 15:04"),
					e.Temperature, e.BloodPressure, e.HeartRate, e.OxygenSaturation, e.Weight)
			}
			return nil
		},
	}

	cmd.AddCommand(recordCmd, historyCmd, logCmd)
	return cmd
}

func appointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appt"},
		Short:   "Book and manage appointments",
	}

	var booking service.BookingRequest
	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			appt, err := c.Appointments.Book(ctx, booking)
			if err != nil {
				return err
			}
			fmt.Println("Appointment id:", appt.Id)
			return nil
		},
	}
	bookCmd.Flags().StringVar(&booking.Doctor, "doctor", "", "doctor name")
	bookCmd.Flags().StringVar(&booking.Specialization, "specialization", "", "specialization")
	bookCmd.Flags().StringVar(&booking.Date, "date", "", "date, e.g. 2026-09-01")
	bookCmd.Flags().StringVar(&booking.Time, "time", "", "time slot, e.g. 10:30 AM")
	bookCmd.Flags().StringVar(&booking.Reason, "reason", "", "reason for the visit")
	bookCmd.Flags().StringVar(&booking.Name, "name", "", "patient name")
	bookCmd.Flags().StringVar(&booking.Phone, "phone", "", "contact phone")
	bookCmd.Flags().StringVar(&booking.Email, "email", "", "contact email")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			appts, err := c.Appointments.List(ctx)
			if err != nil {
				return err
			}
			if len(appts) == 0 {
				fmt.Println("No appointments.")
				return nil
			}
			for _, a := range appts {
				fmt.Printf("%s  %s %s  %s  [%s]  %s\n", a.Id, a.Date, a.Time, a.Doctor, a.Status, a.Reason)
			}
			return nil
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel <appointment-id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return c.Appointments.Cancel(ctx, args[0])
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Sync the local list with the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			appts, err := c.Appointments.Refresh(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Synced %d appointment(s).\n", len(appts))
			return nil
		},
	}

	cmd.AddCommand(bookCmd, listCmd, cancelCmd, refreshCmd)
	return cmd
}

func medsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meds",
		Short: "Manage medications",
	}

	var dosage, frequency, timing string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a medication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return c.Medications.Add(ctx, args[0], dosage, frequency, timing)
		},
	}
	addCmd.Flags().StringVar(&dosage, "dosage", "", "dosage, e.g. 500mg")
	addCmd.Flags().StringVar(&frequency, "frequency", "", "how often, e.g. twice daily")
	addCmd.Flags().StringVar(&timing, "timing", "", "when to take it, e.g. after meals")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List medications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			meds, err := c.Medications.List(ctx)
			if err != nil {
				return err
			}
			if len(meds) == 0 {
				fmt.Println("No medications.")
				return nil
			}
			for _, m := range meds {
				fmt.Printf("%s  %s  %s  %s\n", m.Name, m.Dosage, m.Frequency, m.Timing)
			}
			return nil
		},
	}

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show today's dose schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			schedule, err := c.Medications.Schedule(ctx)
			if err != nil {
				return err
			}
			if len(schedule) == 0 {
				fmt.Println("Nothing scheduled today.")
				return nil
			}
			for slot, doses := range schedule {
				fmt.Println(slot + ":")
				for _, dose := range doses {
					fmt.Println("  " + dose)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, scheduleCmd)
	return cmd
}

func interactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interaction <drug1> <drug2>",
		Short: "Check two drugs for interactions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := c.Medications.CheckInteraction(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if !resp.HasInteraction {
				fmt.Println("No known interaction.")
				return nil
			}
			fmt.Printf("Interaction (%s): %s\n", resp.Severity, resp.Details)
			return nil
		},
	}
}

func doctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Manage your family doctor",
	}

	var contact, specialization string
	saveCmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save your family doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return c.Doctor.Save(ctx, args[0], contact, specialization)
		},
	}
	saveCmd.Flags().StringVar(&contact, "contact", "", "phone number or email")
	saveCmd.Flags().StringVar(&specialization, "specialization", "", "specialization")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show your saved family doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			doctor, err := c.Doctor.Load(ctx)
			if err != nil {
				return err
			}
			if doctor == nil {
				fmt.Println("No family doctor saved yet.")
				return nil
			}
			fmt.Printf("%s  %s  %s\n", doctor.Name, doctor.Contact, doctor.Specialization)
			return nil
		},
	}

	cmd.AddCommand(saveCmd, showCmd)
	return cmd
}

func imageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Analyze a medical image",
	}

	var notes string
	injuryCmd := &cobra.Command{
		Use:   "injury <file>",
		Short: "Run the structured injury assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			clearTyping := c.Renderer.ShowTyping("Analyzing image...")
			_, err = c.Imaging.AnalyzeInjury(ctx, args[0], notes)
			clearTyping()
			if err != nil {
				return err
			}
			entries := c.Transcript.List()
			c.Renderer.RenderEntry(entries[len(entries)-1])
			return nil
		},
	}
	injuryCmd.Flags().StringVar(&notes, "notes", "", "extra context for the analysis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run the free-form image analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			clearTyping := c.Renderer.ShowTyping("Analyzing image...")
			resp, err := c.Imaging.AnalyzeImage(ctx, args[0])
			clearTyping()
			if err != nil {
				return err
			}
			fmt.Println(resp.Text())
			return nil
		},
	}

	cmd.AddCommand(injuryCmd, analyzeCmd)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as text",
	}

	chatExportCmd := &cobra.Command{
		Use:   "chat",
		Short: "Export the conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			userID, err := c.Session.EffectiveUserID(ctx)
			if err != nil {
				return err
			}
			fmt.Print(c.Transcript.ExportAsText(userID))
			return nil
		},
	}

	symptomExportCmd := &cobra.Command{
		Use:   "symptoms",
		Short: "Export the latest symptom report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := c.Chat.ExportSymptomReport(ctx)
			if err != nil {
				return err
			}
			if report == "" {
				fmt.Println("No symptom analyses logged yet.")
				return nil
			}
			fmt.Print(report)
			return nil
		},
	}

	cmd.AddCommand(chatExportCmd, symptomExportCmd)
	return cmd
}

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or reset the chat session",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			userID, err := c.Session.EffectiveUserID(ctx)
			if err != nil {
				return err
			}
			sessionID, err := c.Session.GetOrCreateSessionID(ctx)
			if err != nil {
				return err
			}
			fmt.Println("user:   ", userID)
			fmt.Println("session:", sessionID)
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a fresh chat session (keeps your user id)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return c.Session.ResetSession(ctx)
		},
	}

	cmd.AddCommand(showCmd, resetCmd)
	return cmd
}
