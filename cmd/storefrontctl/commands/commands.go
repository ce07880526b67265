package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"storefront_backend/internal/app/di"
	accountadapters "storefront_backend/internal/feature/account/adapters"
	accountusecase "storefront_backend/internal/feature/account/usecase"
	authentity "storefront_backend/internal/feature/auth/domain/entity"
	discountadapters "storefront_backend/internal/feature/discount/adapters"
	discountusecase "storefront_backend/internal/feature/discount/usecase"
	"storefront_backend/internal/platform/db"
)

// SeedDiscountCode is the discount created by seed.
const SeedDiscountCode = "DISCOUNT2024"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			return db.Migrate(gdb, di.Models()...)
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default discount code",
	Long: `Insert the DISCOUNT2024 discount (10%). Running it again is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			created, err := seed(cmd.Context(), gdb)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintln(cmd.OutOrStdout(), "Discount created successfully.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Discount already exists.")
			}
			return nil
		})
	},
}

var (
	newUsername string
	newPassword string
	newRole     string
	newEmail    string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user with an empty health profile",
	Long: `Create a user account. Typical use is bootstrapping the first admin:

  storefrontctl create-user --username admin --password 'change-me-now' --role admin --email admin@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(gdb *gorm.DB) error {
			u, err := createUser(cmd.Context(), gdb, accountusecase.CreateUserInput{
				Username:   newUsername,
				Password:   newPassword,
				Role:       newRole,
				HealthInfo: accountusecase.HealthInfoInput{Email: newEmail},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %q created with id %d (%s)\n", u.UserName, u.ID, u.Role)
			return nil
		})
	},
}

func init() {
	createUserCmd.Flags().StringVar(&newUsername, "username", "", "Login name (required)")
	createUserCmd.Flags().StringVar(&newPassword, "password", "", "Password, at least 8 characters (required)")
	createUserCmd.Flags().StringVar(&newRole, "role", "customer", "admin or customer")
	createUserCmd.Flags().StringVar(&newEmail, "email", "", "Email used for password resets")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
}

// seed は既定の割引コードを作成します。既にあれば false を返します。
func seed(ctx context.Context, gdb *gorm.DB) (bool, error) {
	uc := discountusecase.NewDiscountUsecase(discountadapters.NewDiscountGorm(gdb), discountadapters.NewUserDiscountGorm(gdb), db.NewTransactor(gdb))
	percent := decimal.NewFromInt(10)
	_, err := uc.CreateDiscount(ctx, discountusecase.CreateDiscountInput{Code: SeedDiscountCode, Percent: &percent})
	if errors.Is(err, discountusecase.ErrDiscountCodeTaken) {
		return false, nil
	}
	return err == nil, err
}

func createUser(ctx context.Context, gdb *gorm.DB, in accountusecase.CreateUserInput) (*authentity.User, error) {
	uc := accountusecase.NewAccountUsecase(accountadapters.NewUserGorm(gdb), accountadapters.NewHealthInfoGorm(gdb), db.NewTransactor(gdb), nil)
	return uc.CreateUser(ctx, in)
}
