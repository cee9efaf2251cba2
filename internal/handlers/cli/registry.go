package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabapcia/orchwatch/internal/subscription"

	"github.com/urfave/cli/v3"
)

func subscriptionFlags(action string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "Orchestrator address to " + action,
			Required: true,
		},
		&cli.StringFlag{
			Name:     "subscriber",
			Usage:    "Subscriber id (Telegram chat id)",
			Required: true,
		},
	}
}

// subscribeCommand returns a CLI command that subscribes a chat to the
// alerts of an orchestrator.
//
// Usage example:
//
//	orchwatch subscribe --address 0xABC123... --subscriber 123456
func subscribeCommand(subs subscription.Service) *cli.Command {
	return &cli.Command{
		Name:        "subscribe",
		Description: "Subscribe a chat to reward, cut and ticket alerts of an orchestrator.",
		Usage:       "Adds a subscriber to an orchestrator. Must provide both address and subscriber.",
		Flags:       subscriptionFlags("subscribe to"),
		Action: func(ctx context.Context, c *cli.Command) error {
			var (
				address    = c.String("address")
				subscriber = c.String("subscriber")
			)

			if err := subs.Subscribe(ctx, address, subscriber); err != nil {
				return err
			}

			_, err := fmt.Fprintf(c.Root().Writer, "Subscription added, %s will now be notified about events of %s\n", subscriber, address)
			return err
		},
	}
}

// unsubscribeCommand returns a CLI command that removes a chat from the
// subscribers of an orchestrator.
//
// Usage example:
//
//	orchwatch unsubscribe --address 0xABC123... --subscriber 123456
func unsubscribeCommand(subs subscription.Service) *cli.Command {
	return &cli.Command{
		Name:        "unsubscribe",
		Description: "Unsubscribe a chat from the alerts of an orchestrator.",
		Usage:       "Removes a subscriber from an orchestrator. Must provide both address and subscriber.",
		Flags:       subscriptionFlags("unsubscribe from"),
		Action: func(ctx context.Context, c *cli.Command) error {
			var (
				address    = c.String("address")
				subscriber = c.String("subscriber")
			)

			if err := subs.Unsubscribe(ctx, address, subscriber); err != nil {
				return err
			}

			_, err := fmt.Fprintf(c.Root().Writer, "%s is now unsubscribed from orchestrator %s\n", subscriber, address)
			return err
		},
	}
}

// listSubscriptionsCommand returns a CLI command that prints every
// orchestrator with its subscribers, one per line.
//
// Usage example:
//
//	orchwatch subscriptions
func listSubscriptionsCommand(subs subscription.Service) *cli.Command {
	return &cli.Command{
		Name:        "subscriptions",
		Description: "List every watched orchestrator and its subscribers.",
		Usage:       "Prints one line per orchestrator.",
		Action: func(ctx context.Context, c *cli.Command) error {
			list, err := subs.List(ctx)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if len(list) == 0 {
				_, err := fmt.Fprintln(w, "No subscriptions")
				return err
			}

			for _, s := range list {
				if _, err := fmt.Fprintf(w, "%s: %s\n", s.Orchestrator.Hex(), strings.Join(s.Subscribers, ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
