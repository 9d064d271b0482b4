package main

import (
	"fmt"
	"strconv"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/checkin"

	"github.com/spf13/cobra"
)

func (a *app) gridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Show the weekly schedule grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			grid, err := c.Grid(cmd.Context())
			if err != nil {
				return err
			}
			printGrid(cmd.OutOrStdout(), grid)
			return nil
		},
	}
}

func (a *app) nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next <classID>",
		Short: "Show the next session of a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			next, err := c.NextOccurrence(cmd.Context(), ids[0])
			if err != nil {
				return err
			}
			printNext(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

func (a *app) enrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <slotID> <memberID>",
		Short: "Enroll a member in a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := c.Enroll(cmd.Context(), ids[0], ids[1])
			if err != nil {
				return err
			}
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

func (a *app) unenrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unenroll <slotID> <memberID>",
		Short: "Remove a member from a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := c.Unenroll(cmd.Context(), ids[0], ids[1])
			if err != nil {
				return err
			}
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

func (a *app) rosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster <slotID>",
		Short: "List the members enrolled in a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			roster, err := c.ListEnrollments(cmd.Context(), ids[0])
			if err != nil {
				return err
			}
			printRoster(cmd.OutOrStdout(), roster)
			return nil
		},
	}
}

func (a *app) waitlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Manage slot waitlists",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <slotID>",
			Short: "Show the waitlist in order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				c, err := a.session(cmd.Context())
				if err != nil {
					return err
				}
				entries, err := c.ListWaitlist(cmd.Context(), ids[0])
				if err != nil {
					return err
				}
				printWaitlist(cmd.OutOrStdout(), entries)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <slotID> <memberID>",
			Short: "Put a member on the waitlist",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				c, err := a.session(cmd.Context())
				if err != nil {
					return err
				}
				snap, err := c.AddToWaitlist(cmd.Context(), ids[0], ids[1])
				if err != nil {
					return err
				}
				printSnapshot(cmd.OutOrStdout(), snap)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <slotID> <memberID>",
			Short: "Take a member off the waitlist",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				c, err := a.session(cmd.Context())
				if err != nil {
					return err
				}
				snap, err := c.RemoveFromWaitlist(cmd.Context(), ids[0], ids[1])
				if err != nil {
					return err
				}
				printSnapshot(cmd.OutOrStdout(), snap)
				return nil
			},
		},
		&cobra.Command{
			Use:   "notify <slotID>",
			Short: "Notify the first member in line",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				c, err := a.session(cmd.Context())
				if err != nil {
					return err
				}
				entry, err := c.NotifyNext(cmd.Context(), ids[0])
				if err != nil {
					return err
				}
				if entry == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "La lista de espera está vacía")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Notificado: %s (#%d)\n", entry.MemberName, entry.MemberID)
				return nil
			},
		},
	)
	return cmd
}

func (a *app) checkinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin <memberID>",
		Short: "Issue a QR check-in token and wait until it is scanned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			tok, err := c.IssueCheckin(cmd.Context(), ids[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Token: %s (vence %s)\n", tok.Token, tok.ExpiresAt.Local().Format("15:04:05"))

			final, err := c.PollCheckin(cmd.Context(), tok, nil)
			if err != nil {
				return err
			}
			switch final.Status {
			case checkin.StatusVerified:
				fmt.Fprintln(out, "Check-in confirmado")
			default:
				fmt.Fprintln(out, "El código venció sin ser escaneado")
			}
			return nil
		},
	}
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, raw := range args {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("ID inválido: %q", raw)
		}
		ids[i] = id
	}
	return ids, nil
}
