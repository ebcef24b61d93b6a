package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// Menu runs the interactive loop: a top menu with item, table and order
// submenus plus a simulation mode.
func Menu(c *Client) {
	reader := bufio.NewReader(os.Stdin)
	for {
		choice := prompt(reader, `What would you like to do?
  1) Item operations
  2) Table operations
  3) Order operations
  4) Simulation
  5) Exit
> `)
		switch choice {
		case "1":
			itemMenu(c, reader)
		case "2":
			tableMenu(c, reader)
		case "3":
			orderMenu(c, reader)
		case "4":
			Simulate(c)
		case "5", "q", "exit":
			return
		default:
			fmt.Println("Please select a valid option")
		}
	}
}

func itemMenu(c *Client, reader *bufio.Reader) {
	choice := prompt(reader, `[item] What would you like to do?
  1) Add item
  2) List items
  3) Get item by id
  4) Back
> `)
	switch choice {
	case "1":
		description := prompt(reader, "Description: ")
		price := promptInt(reader, "Price (minor unit): ")
		minutes := promptInt(reader, "Estimated minutes: ")
		show(c.AddItem(description, price, minutes))
	case "2":
		show(c.ListItems())
	case "3":
		id := promptInt(reader, "Item id: ")
		show(c.GetItem(uint(id)))
	}
}

func tableMenu(c *Client, reader *bufio.Reader) {
	choice := prompt(reader, `[table] What would you like to do?
  1) Check in
  2) Check out
  3) List tables
  4) Get table by number
  5) List table orders
  6) Delete a table order
  7) Back
> `)
	switch choice {
	case "1":
		show(c.CheckIn(promptInt(reader, "Table number: ")))
	case "2":
		show(c.CheckOut(promptInt(reader, "Table number: ")))
	case "3":
		show(c.ListTables())
	case "4":
		show(c.GetTable(promptInt(reader, "Table number: ")))
	case "5":
		show(c.TableOrders(promptInt(reader, "Table number: ")))
	case "6":
		number := promptInt(reader, "Table number: ")
		orderID := promptInt(reader, "Order id: ")
		show(c.DeleteTableOrder(number, uint(orderID)))
	}
}

func orderMenu(c *Client, reader *bufio.Reader) {
	choice := prompt(reader, `[order] What would you like to do?
  1) Submit order(s)
  2) List orders
  3) Get order by id
  4) Delete order by id
  5) Back
> `)
	switch choice {
	case "1":
		lines := []OrderLine{}
		for {
			lines = append(lines, OrderLine{
				TableID:  promptInt(reader, "Table number: "),
				ItemID:   uint(promptInt(reader, "Item id: ")),
				Quantity: promptInt(reader, "Quantity: "),
			})
			if prompt(reader, "Add another line? (y/N): ") != "y" {
				break
			}
		}
		show(c.SubmitOrders(lines))
	case "2":
		show(c.ListOrders())
	case "3":
		show(c.GetOrder(uint(promptInt(reader, "Order id: "))))
	case "4":
		show(c.DeleteOrder(uint(promptInt(reader, "Order id: "))))
	}
}

// Simulate runs one full table lifecycle against the API: check in a random
// table, add a menu item, order it, inspect the orders and check out.
func Simulate(c *Client) {
	number := rand.Intn(100) + 1
	fmt.Printf("Simulating table %d\n", number)

	show(c.CheckIn(number))

	created, err := c.AddItem("Coffee", 3, 5)
	show(created, err)
	if err != nil {
		return
	}
	var body struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(created), &body); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	show(c.SubmitOrders([]OrderLine{{TableID: number, ItemID: body.Data.ID, Quantity: 2}}))
	show(c.TableOrders(number))
	show(c.CheckOut(number))
}

func prompt(reader *bufio.Reader, text string) string {
	fmt.Print(text)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptInt(reader *bufio.Reader, text string) int {
	for {
		raw := prompt(reader, text)
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
		fmt.Println("Please enter a valid number")
	}
}

func show(text string, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	fmt.Println(text)
}
