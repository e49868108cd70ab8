package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"go-shop-backoffice/internal/config"
	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
	"go-shop-backoffice/pkg/validator"
)

const dateLayout = "2006-01-02"

// ShopOpener connects to the shop table on first use so commands that never
// touch the database (machine-code) work without one.
type ShopOpener func(ctx context.Context) (repository.ShopRepository, error)

type shopctl struct {
	shopName    string
	machineCode func() string
	open        ShopOpener
}

func NewRootCmd(shopName string, machineCode func() string, open ShopOpener) *cobra.Command {
	sc := &shopctl{shopName: shopName, machineCode: machineCode, open: open}

	root := &cobra.Command{
		Use:           "shopctl",
		Short:         "Administer the shop account of this deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			sc.shopName = config.NormalizeShopName(sc.shopName)
		},
	}
	root.PersistentFlags().StringVar(&sc.shopName, "shop", shopName, "Shop name (defaults to SHOP_NAME)")

	root.AddCommand(
		sc.createShopCmd(),
		sc.resetPasswordCmd(),
		sc.bindMachineCmd(),
		sc.unbindMachineCmd(),
		sc.setExpiryCmd(),
		sc.machineCodeCmd(),
	)
	return root
}

func (sc *shopctl) createShopCmd() *cobra.Command {
	var username, password, expiry string
	var bind bool

	cmd := &cobra.Command{
		Use:   "create-shop",
		Short: "Create the login for this shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			shop := &model.Shop{ShopName: sc.shopName, Username: strings.TrimSpace(username)}
			if err := validator.First(shop); err != nil {
				return err
			}
			if err := shop.SetPassword(password); err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			if expiry != "" {
				until, err := parseExpiry(expiry)
				if err != nil {
					return err
				}
				shop.ExpiryDate = &until
			}
			if bind {
				shop.MachineCode = sc.machineCode()
			}

			shops, err := sc.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := shops.Create(cmd.Context(), shop); err != nil {
				return fmt.Errorf("create shop: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s/%s (id %s)\n", shop.ShopName, shop.Username, shop.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login username")
	cmd.Flags().StringVar(&password, "password", "", "Login password")
	cmd.Flags().StringVar(&expiry, "expiry", "", "Subscription end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&bind, "bind-machine", false, "Bind the account to this machine")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (sc *shopctl) resetPasswordCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for a shop login",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("password must not be empty")
			}
			return sc.update(cmd, username, func(shop *model.Shop) error {
				return shop.SetPassword(password)
			}, "password reset")
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login username")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (sc *shopctl) bindMachineCmd() *cobra.Command {
	var username, code string

	cmd := &cobra.Command{
		Use:   "bind-machine",
		Short: "Allow logins for this shop only from one machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if code == "" {
				code = sc.machineCode()
			}
			return sc.update(cmd, username, func(shop *model.Shop) error {
				shop.MachineCode = code
				return nil
			}, "bound to "+code)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login username")
	cmd.Flags().StringVar(&code, "code", "", "Machine code (defaults to this machine)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (sc *shopctl) unbindMachineCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "unbind-machine",
		Short: "Allow logins for this shop from any machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.update(cmd, username, func(shop *model.Shop) error {
				shop.MachineCode = ""
				return nil
			}, "unbound")
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login username")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (sc *shopctl) setExpiryCmd() *cobra.Command {
	var username, date string

	cmd := &cobra.Command{
		Use:   "set-expiry",
		Short: "Set or clear the subscription end date",
		RunE: func(cmd *cobra.Command, args []string) error {
			var until *time.Time
			if date != "" && !strings.EqualFold(date, "none") {
				t, err := parseExpiry(date)
				if err != nil {
					return err
				}
				until = &t
			}
			done := "expiry cleared"
			if until != nil {
				done = "expires after " + date
			}
			return sc.update(cmd, username, func(shop *model.Shop) error {
				shop.ExpiryDate = until
				return nil
			}, done)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login username")
	cmd.Flags().StringVar(&date, "date", "", "Last valid day (YYYY-MM-DD); empty or \"none\" clears it")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (sc *shopctl) machineCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "machine-code",
		Short: "Print the code this machine presents at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), sc.machineCode())
			return nil
		},
	}
}

func (sc *shopctl) update(cmd *cobra.Command, username string, change func(*model.Shop) error, done string) error {
	ctx := cmd.Context()
	shops, err := sc.open(ctx)
	if err != nil {
		return err
	}

	shop, err := shops.FindByUsername(ctx, sc.shopName, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("no login %q for shop %q", username, sc.shopName)
	}
	if err != nil {
		return err
	}

	if err := change(shop); err != nil {
		return err
	}
	if err := shops.Update(ctx, shop); err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s/%s: %s\n", shop.ShopName, shop.Username, done)
	return nil
}

// parseExpiry keeps the whole named day valid.
func parseExpiry(s string) (time.Time, error) {
	day, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return day.Add(24*time.Hour - time.Nanosecond), nil
}
