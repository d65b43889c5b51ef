package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/myhealthapp/fitlog/internal/forms"
	"github.com/myhealthapp/fitlog/pkg/models"
)

const dateFormat = "2006-01-02 15:04"

// now and location are swapped in tests
var (
	now      = time.Now
	location = time.Local
)

// NewShowCommand creates the show command
func NewShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [activity-id]",
		Short: "Show activities without the TUI",
		Long: `Show activities in a non-interactive format.
Without arguments: lists all activities
With an activity ID: shows that activity`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showActivity(cmd, a, models.ID(args[0]))
			}
			return showActivities(cmd, a)
		},
	}
}

func showActivities(cmd *cobra.Command, a *app) error {
	activities, err := a.client.ListActivities(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch activities: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(activities) == 0 {
		fmt.Fprintln(out, "No activities logged yet. Start by logging one!")
		return nil
	}

	fmt.Fprintln(out, "Activities:")
	fmt.Fprintln(out, "===========")
	for _, activity := range activities {
		fmt.Fprintf(out, "#%s %-13s %s  %s  %s\n",
			activity.ID,
			activity.ActivityType,
			activity.DateTime.In(location).Format(dateFormat),
			activity.Duration,
			activity.Status)
		if activity.Remarks != "" {
			fmt.Fprintf(out, "   Remarks: %s\n", truncateString(activity.Remarks, 60))
		}
	}
	return nil
}

func showActivity(cmd *cobra.Command, a *app, id models.ID) error {
	activity, err := a.client.GetActivity(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch activity %s: %w", id, err)
	}
	printActivity(cmd.OutOrStdout(), activity)
	return nil
}

func printActivity(out io.Writer, activity *models.Activity) {
	fmt.Fprintf(out, "Activity #%s\n", activity.ID)
	fmt.Fprintln(out, "==========")
	fmt.Fprintf(out, "Type:     %s\n", activity.ActivityType)
	fmt.Fprintf(out, "When:     %s\n", activity.DateTime.In(location).Format(dateFormat))
	fmt.Fprintf(out, "Duration: %s\n", activity.Duration)
	fmt.Fprintf(out, "Status:   %s\n", activity.Status)
	if activity.Remarks != "" {
		fmt.Fprintf(out, "Remarks:  %s\n", activity.Remarks)
	}
}

// activityFlags are the draft fields settable from the command line
type activityFlags struct {
	activityType string
	at           string
	duration     string
	status       string
	remarks      string
}

func (f *activityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.activityType, "type", string(forms.DefaultActivityType), fmt.Sprintf("Activity type, one of %v", models.ActivityTypes))
	cmd.Flags().StringVar(&f.at, "at", "", "Local date and time as YYYY-MM-DDThh:mm (default now)")
	cmd.Flags().StringVar(&f.duration, "duration", forms.DefaultDuration, "Duration as HH:MM:SS")
	cmd.Flags().StringVar(&f.status, "status", string(forms.DefaultStatus), fmt.Sprintf("Status, one of %v", models.Statuses))
	cmd.Flags().StringVar(&f.remarks, "remarks", "", "Free-form notes")
}

// apply copies every flag the user set onto the draft
func (f *activityFlags) apply(cmd *cobra.Command, draft *forms.ActivityDraft) {
	flags := cmd.Flags()
	if flags.Changed("type") {
		draft.ActivityType = models.ActivityType(f.activityType)
	}
	if flags.Changed("at") {
		draft.DateTime = f.at
	}
	if flags.Changed("duration") {
		draft.Duration = f.duration
	}
	if flags.Changed("status") {
		draft.Status = models.Status(f.status)
	}
	if flags.Changed("remarks") {
		draft.Remarks = f.remarks
	}
}

// NewAddCommand creates the add command
func NewAddCommand(a *app) *cobra.Command {
	var flags activityFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft := forms.NewActivityDraft(now(), location)
			flags.apply(cmd, &draft)

			payload, err := draft.Payload(location)
			if err != nil {
				return err
			}

			activity, err := a.client.CreateActivity(cmd.Context(), payload)
			if err != nil {
				return fmt.Errorf("failed to log activity: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged activity #%s\n", activity.ID)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// NewEditCommand creates the edit command
func NewEditCommand(a *app) *cobra.Command {
	var flags activityFlags

	cmd := &cobra.Command{
		Use:   "edit <activity-id>",
		Short: "Change fields of an existing activity",
		Long: `Fetch an activity, apply the given flags and send the full record back.
Fields without a flag keep their current value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.ID(args[0])
			activity, err := a.client.GetActivity(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to fetch activity %s: %w", id, err)
			}

			draft := forms.DraftFromActivity(*activity, location)
			draft.ID = id
			flags.apply(cmd, &draft)

			payload, err := draft.Payload(location)
			if err != nil {
				return err
			}

			if _, err := a.client.UpdateActivity(cmd.Context(), id, payload); err != nil {
				return fmt.Errorf("failed to update activity: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity #%s\n", id)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// NewStatusCommand creates the status command
func NewStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "status <activity-id> <Completed|Pending|Cancelled>",
		Short:     "Change the status of an activity",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(models.StatusCompleted), string(models.StatusPending), string(models.StatusCancelled)},
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.ID(args[0])
			status, err := models.ParseStatus(args[1])
			if err != nil {
				return err
			}

			if _, err := a.client.UpdateActivityStatus(cmd.Context(), id, status); err != nil {
				return fmt.Errorf("error updating status: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Activity #%s marked %s\n", id, status)
			return nil
		},
	}
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <activity-id>",
		Short: "Delete an activity after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.ID(args[0])

			if !yes {
				answer, err := prompt(cmd, "Are you sure you want to delete this activity? [y/N] ")
				if err != nil {
					return err
				}
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := a.client.DeleteActivity(cmd.Context(), id); err != nil {
				return fmt.Errorf("error deleting activity: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity #%s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
