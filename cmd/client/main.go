package main

import (
	"fmt"
	"os"

	"github.com/wenrir/simple-resturant/client"

	"github.com/spf13/cobra"
)

var api = client.New()

// rootCmd opens the interactive menu when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "resturant-client",
	Short: "Interactive client for the restaurant order API.",
	Long: `resturant-client drives the restaurant order-management API:
check tables in and out, manage menu items and submit orders. Without a
subcommand it opens an interactive menu.`,
	Run: func(cmd *cobra.Command, args []string) {
		client.Menu(api)
	},
}

var itemsCmd = &cobra.Command{Use: "items", Short: "Menu item operations"}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all menu items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(api.ListItems())
	},
}

var itemsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get one menu item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return run(api.GetItem(id))
	},
}

var (
	itemDescription string
	itemPrice       int
	itemMinutes     int
)

var itemsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a menu item",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(api.AddItem(itemDescription, itemPrice, itemMinutes))
	},
}

var tablesCmd = &cobra.Command{Use: "tables", Short: "Table operations"}

var tableNumber int

var tablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(api.ListTables())
	},
}

var tablesCheckInCmd = &cobra.Command{
	Use:   "check-in",
	Short: "Check a table in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(api.CheckIn(tableNumber))
	},
}

var tablesCheckOutCmd = &cobra.Command{
	Use:   "check-out",
	Short: "Check a table out and print its total",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(api.CheckOut(tableNumber))
	},
}

var tablesOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List a table's orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(api.TableOrders(tableNumber))
	},
}

var ordersCmd = &cobra.Command{Use: "orders", Short: "Order operations"}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(api.ListOrders())
	},
}

var (
	orderItemID   uint
	orderQuantity int
)

var ordersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit one order line",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(api.SubmitOrders([]client.OrderLine{{
			TableID:  tableNumber,
			ItemID:   orderItemID,
			Quantity: orderQuantity,
		}}))
	},
}

var ordersDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return run(api.DeleteOrder(id))
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one full check-in, order, check-out cycle",
	Run: func(cmd *cobra.Command, args []string) {
		client.Simulate(api)
	},
}

func init() {
	itemsAddCmd.Flags().StringVar(&itemDescription, "description", "", "item description")
	itemsAddCmd.Flags().IntVar(&itemPrice, "price", 0, "price in the minor currency unit")
	itemsAddCmd.Flags().IntVar(&itemMinutes, "minutes", 0, "estimated preparation minutes")
	itemsAddCmd.MarkFlagRequired("description")
	itemsAddCmd.MarkFlagRequired("price")
	itemsCmd.AddCommand(itemsListCmd, itemsGetCmd, itemsAddCmd)

	for _, cmd := range []*cobra.Command{tablesCheckInCmd, tablesCheckOutCmd, tablesOrdersCmd, ordersAddCmd} {
		cmd.Flags().IntVar(&tableNumber, "number", 0, "table number")
		cmd.MarkFlagRequired("number")
	}
	tablesCmd.AddCommand(tablesListCmd, tablesCheckInCmd, tablesCheckOutCmd, tablesOrdersCmd)

	ordersAddCmd.Flags().UintVar(&orderItemID, "item", 0, "item id")
	ordersAddCmd.Flags().IntVar(&orderQuantity, "quantity", 1, "quantity")
	ordersAddCmd.MarkFlagRequired("item")
	ordersCmd.AddCommand(ordersListCmd, ordersAddCmd, ordersDeleteCmd)

	rootCmd.AddCommand(itemsCmd, tablesCmd, ordersCmd, simulateCmd)
}

func run(text string, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func parseID(raw string) (uint, error) {
	var id uint
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
