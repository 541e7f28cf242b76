// Package main runs the interactive marketplace shell: browsing the cart,
// wishlist and orders of the current session and checking out.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Anisah23/lartduvraisoi-client/internal/api"
	"github.com/Anisah23/lartduvraisoi-client/internal/checkout"
	"github.com/Anisah23/lartduvraisoi-client/internal/client/storage"
	clientsync "github.com/Anisah23/lartduvraisoi-client/internal/client/sync"
	"github.com/Anisah23/lartduvraisoi-client/internal/config"
	"github.com/Anisah23/lartduvraisoi-client/internal/logger"
	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"github.com/Anisah23/lartduvraisoi-client/internal/session"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	version   string
	buildDate string
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// shellNotifier renders synchronizer notifications as styled shell output.
type shellNotifier struct{}

func (shellNotifier) Success(msg string) { fmt.Println(successStyle.Render(msg)) }
func (shellNotifier) Failure(msg string) { fmt.Println(failureStyle.Render(msg)) }

// app bundles everything the shell commands operate on.
type app struct {
	sessions  *session.Manager
	cart      *clientsync.Cart
	wishlist  *clientsync.Wishlist
	orders    *clientsync.Orders
	checkout  *checkout.Checkout
	client    *api.Client
	tokenPath string
}

func main() {
	options := config.Parse()

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	if version != "" {
		fmt.Println(dimStyle.Render(fmt.Sprintf("lartduvraisoi shell %s (%s)", version, buildDate)))
	}

	sessions := session.NewManager()
	client := api.New(options.BaseURL, nil, sessions, zapLogger)

	store := storage.NewWishlistStore(options.StoragePath)
	notify := shellNotifier{}

	cart := clientsync.NewCart(client, notify, zapLogger)
	wishlist := clientsync.NewWishlist(client, store, sessions, zapLogger)
	orders := clientsync.NewOrders(client, zapLogger)
	clientsync.Bind(sessions, cart, wishlist, orders)

	a := &app{
		sessions:  sessions,
		cart:      cart,
		wishlist:  wishlist,
		orders:    orders,
		checkout:  checkout.New(client, zapLogger),
		client:    client,
		tokenPath: options.TokenPath,
	}

	// A previously saved token restores the session; the role comes from the
	// environment since the token itself does not carry one here.
	if token, err := storage.LoadToken(options.TokenPath); err != nil {
		zapLogger.Warn("failed to read saved token", zap.Error(err))
	} else if token != "" {
		role := models.Role(os.Getenv("ROLE"))
		if role == "" {
			role = models.RoleCollector
		}
		sessions.Login(token, role)
	} else {
		// Logged out: the wishlist still renders from its local store.
		wishlist.Fetch(context.Background())
	}

	repl(a)
}

// repl runs the interactive shell loop.
func repl(a *app) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("lartduvraisoi> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			printHelp()
		case "login":
			a.login(args[1:])
		case "logout":
			a.logout()
		case "cart":
			a.cartCmd(args[1:])
		case "wishlist":
			a.wishlistCmd(args[1:])
		case "orders":
			a.ordersCmd(args[1:])
		case "checkout":
			a.checkoutCmd(scanner)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func printHelp() {
	fmt.Println(`Available commands:
  login <token> [Collector|Artist]   authenticate against the API
  logout                             drop the session
  cart                               show the cart with totals
  cart add <artworkID> [qty]         add an artwork
  cart qty <artworkID> <n>           change a quantity (0 removes)
  cart rm <artworkID>                remove a line
  cart clear                         empty the cart
  wishlist                           show the wishlist
  wishlist add <artworkID> [title [price]]
  wishlist rm <artworkID>
  orders                             list orders
  orders show <orderID>              order detail with payments/deliveries
  orders status <orderID> <status>   request a status transition (Artist)
  checkout                           pay for the cart and place the order
  exit`)
}

func (a *app) login(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: login <token> [Collector|Artist]")
		return
	}
	role := models.RoleCollector
	if len(args) > 1 {
		role = models.Role(args[1])
	}
	a.sessions.Login(args[0], role)
	if err := storage.SaveToken(a.tokenPath, args[0]); err != nil {
		fmt.Println(failureStyle.Render("Could not save token: " + err.Error()))
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Logged in as %s", role)))
}

func (a *app) logout() {
	a.sessions.Logout()
	_ = storage.SaveToken(a.tokenPath, "")
	fmt.Println(dimStyle.Render("Logged out"))
}

func (a *app) cartCmd(args []string) {
	ctx := context.Background()
	if len(args) == 0 {
		a.renderCart()
		return
	}
	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Println("Usage: cart add <artworkID> [qty]")
			return
		}
		qty := 1
		if len(args) > 2 {
			if n, err := strconv.Atoi(args[2]); err == nil {
				qty = n
			}
		}
		_ = a.cart.Add(ctx, args[1], qty)
	case "qty":
		if len(args) < 3 {
			fmt.Println("Usage: cart qty <artworkID> <n>")
			return
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Println("quantity must be a number")
			return
		}
		_ = a.cart.SetQuantity(ctx, args[1], n)
	case "rm":
		if len(args) < 2 {
			fmt.Println("Usage: cart rm <artworkID>")
			return
		}
		_ = a.cart.Remove(ctx, args[1])
	case "clear":
		a.cart.Clear(ctx)
	default:
		fmt.Println("Unknown cart command")
	}
}

func (a *app) renderCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println(dimStyle.Render("Your cart is empty"))
		return
	}
	fmt.Println(titleStyle.Render("Cart"))
	for _, item := range items {
		line := fmt.Sprintf("  %-12s %-28s x%-3d %s",
			item.ArtworkID, item.Artwork.Title, item.Quantity,
			priceStyle.Render(fmt.Sprintf("$%.2f", item.Artwork.Price*float64(item.Quantity))))
		fmt.Println(line)
	}
	summary := checkout.Summarize(items)
	fmt.Printf("  %d items\n", a.cart.Count())
	fmt.Printf("  Subtotal  %s\n", priceStyle.Render(fmt.Sprintf("$%.2f", summary.Subtotal)))
	if summary.Shipping == 0 {
		fmt.Println("  Shipping  FREE")
	} else {
		fmt.Printf("  Shipping  %s\n", priceStyle.Render(fmt.Sprintf("$%.2f", summary.Shipping)))
	}
	fmt.Printf("  Tax (10%%) %s\n", priceStyle.Render(fmt.Sprintf("$%.2f", summary.Tax)))
	fmt.Printf("  Total     %s\n", priceStyle.Render(fmt.Sprintf("$%.2f", summary.Total)))
	if gap := summary.FreeShippingGap(); gap > 0 {
		fmt.Println(dimStyle.Render(fmt.Sprintf("  Add $%.2f more for free shipping!", gap)))
	}
}

func (a *app) wishlistCmd(args []string) {
	ctx := context.Background()
	if len(args) == 0 {
		items := a.wishlist.Items()
		if len(items) == 0 {
			fmt.Println(dimStyle.Render("Your wishlist is empty"))
			return
		}
		fmt.Println(titleStyle.Render(fmt.Sprintf("Wishlist (%d)", a.wishlist.Count())))
		for _, item := range items {
			fmt.Printf("  %-12s %-28s %s\n", item.ID, item.Title,
				priceStyle.Render(fmt.Sprintf("$%.2f", item.Price)))
		}
		return
	}
	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Println("Usage: wishlist add <artworkID> [title [price]]")
			return
		}
		art := models.Artwork{ID: args[1]}
		if len(args) > 2 {
			art.Title = args[2]
		}
		if len(args) > 3 {
			if p, err := strconv.ParseFloat(args[3], 64); err == nil {
				art.Price = p
			}
		}
		if err := a.wishlist.Add(ctx, art); err != nil {
			fmt.Println(failureStyle.Render("Could not save wishlist: " + err.Error()))
			return
		}
		fmt.Println(successStyle.Render("Added to wishlist"))
	case "rm":
		if len(args) < 2 {
			fmt.Println("Usage: wishlist rm <artworkID>")
			return
		}
		if err := a.wishlist.Remove(ctx, args[1]); err != nil {
			fmt.Println(failureStyle.Render("Could not save wishlist: " + err.Error()))
			return
		}
		fmt.Println(successStyle.Render("Removed from wishlist"))
	default:
		fmt.Println("Unknown wishlist command")
	}
}

func (a *app) ordersCmd(args []string) {
	ctx := context.Background()
	if len(args) == 0 {
		a.orders.Fetch(ctx)
		items := a.orders.Items()
		if len(items) == 0 {
			fmt.Println(dimStyle.Render("No orders yet"))
			return
		}
		header := "My Orders"
		if a.sessions.Role() == models.RoleArtist {
			header = "Order Management"
		}
		fmt.Println(titleStyle.Render(header))
		for _, order := range items {
			fmt.Printf("  %-36s %-10s %s\n", order.ID, order.Status,
				priceStyle.Render(fmt.Sprintf("$%.2f", order.TotalAmount)))
		}
		return
	}
	switch args[0] {
	case "show":
		if len(args) < 2 {
			fmt.Println("Usage: orders show <orderID>")
			return
		}
		a.showOrder(ctx, args[1])
	case "status":
		if len(args) < 3 {
			fmt.Println("Usage: orders status <orderID> <status>")
			return
		}
		if err := a.orders.UpdateStatus(ctx, args[1], models.OrderStatus(args[2])); err != nil {
			fmt.Println(failureStyle.Render("Failed to update order: " + err.Error()))
			return
		}
		fmt.Println(successStyle.Render("Order updated"))
	default:
		fmt.Println("Unknown orders command")
	}
}

func (a *app) showOrder(ctx context.Context, orderID string) {
	order := a.orders.Get(orderID)
	if order == nil {
		fmt.Println(dimStyle.Render("Order not found; try 'orders' first"))
		return
	}
	fmt.Println(titleStyle.Render("Order " + order.ID))
	fmt.Printf("  Status: %s\n", order.Status)
	fmt.Printf("  Total:  %s\n", priceStyle.Render(fmt.Sprintf("$%.2f", order.TotalAmount)))
	for _, item := range order.Items {
		fmt.Printf("  %-12s x%-3d $%.2f\n", item.ArtworkID, item.Quantity, item.Price)
	}

	if payments, err := a.client.GetOrderPayments(ctx, orderID); err == nil {
		for _, p := range payments {
			fmt.Printf("  Payment: %s ($%.2f)\n", p.Status, p.Amount)
		}
	}
	if deliveries, err := a.client.GetOrderDeliveries(ctx, orderID); err == nil {
		for _, d := range deliveries {
			fmt.Printf("  Delivery: %s via %s (%s)\n", d.Status, d.Carrier, d.TrackingNumber)
		}
	}

	if a.sessions.Role() == models.RoleArtist {
		if next := models.AvailableTransitions(order.Status); len(next) > 0 {
			opts := make([]string, len(next))
			for i, s := range next {
				opts[i] = string(s)
			}
			fmt.Println(dimStyle.Render("  Next: orders status " + orderID + " <" + strings.Join(opts, "|") + ">"))
		}
	}
}

func (a *app) checkoutCmd(scanner *bufio.Scanner) {
	ctx := context.Background()
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println(dimStyle.Render("Your cart is empty. Add some items before checking out."))
		return
	}

	shipping := models.ShippingDetails{}
	fields := []struct {
		label string
		dest  *string
	}{
		{"Full name", &shipping.FullName},
		{"Address", &shipping.Address},
		{"City", &shipping.City},
		{"Postal code", &shipping.PostalCode},
		{"Country", &shipping.Country},
	}
	for _, f := range fields {
		fmt.Printf("%s: ", f.label)
		if !scanner.Scan() {
			return
		}
		*f.dest = strings.TrimSpace(scanner.Text())
	}

	intent, err := a.checkout.Begin(ctx, items)
	if err != nil {
		fmt.Println(failureStyle.Render("Failed to initialize payment"))
		return
	}
	fmt.Println(dimStyle.Render("Payment initialized (" + intent.ClientSecret + ")"))

	order, err := a.checkout.PlaceOrder(ctx, items, shipping)
	if err != nil {
		fmt.Println(failureStyle.Render("Failed to create order"))
		return
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Order %s placed for $%.2f", order.ID, order.TotalAmount)))

	a.cart.Clear(ctx)
	a.orders.Fetch(ctx)
}
