// Command booking-cli walks a customer through the booking flow in a terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-AppointmentService/internal/wizard"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

var errQuit = errors.New("quit")

type cli struct {
	in      *bufio.Scanner
	out     io.Writer
	client  *bookingapi.Client
	session *wizard.Session
	timeout time.Duration
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	baseURL := flag.String("url", "", "API base URL, overrides client.base_url")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}

	log := logger.NewWithWriter(os.Stderr, cfg.Logs.Level)
	timeout := time.Duration(cfg.Client.Timeout) * time.Second

	client := bookingapi.NewClient(cfg.Client.BaseURL, timeout, log)
	adapter := apiAdapter{client: client}

	c := &cli{
		in:      bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		client:  client,
		session: wizard.NewSession(adapter, adapter, timeout, log),
		timeout: timeout,
	}

	if err := c.run(context.Background()); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "booking-cli: %v\n", err)
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Type 'b' to go back, 'q' to quit.")
	for {
		state := c.session.State()

		var err error
		switch state.Step {
		case wizard.StepSelectBusiness:
			err = c.chooseBusiness(ctx, state)
		case wizard.StepSelectService:
			err = c.chooseService(ctx, state)
		case wizard.StepSelectStaff:
			err = c.chooseStaff(ctx, state)
		case wizard.StepDateTimeAndContact:
			err = c.fillDetails(ctx, state)
		case wizard.StepConfirmed:
			a := state.Appointment
			fmt.Fprintf(c.out, "\nBooked! Appointment %s on %s %s-%s (%s)\n", a.ID, a.Date, a.StartTime, a.EndTime, a.Status)
			return nil
		}

		if errors.Is(err, errQuit) {
			c.session.Dispatch(ctx, wizard.Leave{})
			return err
		}
		if err != nil {
			fmt.Fprintf(c.out, "! %s\n", describe(err))
		}
	}
}

func (c *cli) chooseBusiness(ctx context.Context, state wizard.State) error {
	if state.LastError != nil && state.Draft.BusinessID != "" {
		answer, err := c.prompt("Loading failed. Retry? [y/n]")
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "y") {
			_, err = c.session.Dispatch(ctx, wizard.RetryCatalog{})
			return err
		}
	}

	listCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	businesses, err := c.client.ListBusinesses(listCtx)
	if err != nil {
		return toWizardError(err)
	}
	if len(businesses) == 0 {
		fmt.Fprintln(c.out, "No businesses available.")
		return errQuit
	}

	fmt.Fprintln(c.out, "\nBusinesses:")
	for i, b := range businesses {
		fmt.Fprintf(c.out, "  %d) %s (%s)\n", i+1, b.Name, b.Type)
	}
	i, err := c.pick(len(businesses))
	if err != nil {
		return err
	}
	_, err = c.session.Dispatch(ctx, wizard.SelectBusiness{BusinessID: businesses[i].ID})
	return err
}

func (c *cli) chooseService(ctx context.Context, state wizard.State) error {
	if len(state.Services) == 0 {
		fmt.Fprintln(c.out, "This business has no bookable services.")
		return c.back(ctx)
	}

	fmt.Fprintln(c.out, "\nServices:")
	for i, s := range state.Services {
		fmt.Fprintf(c.out, "  %d) %s, %d min, %s\n", i+1, s.Name, s.DurationMinutes, s.Price)
	}
	i, err := c.pick(len(state.Services))
	if err != nil {
		return c.backOr(ctx, err)
	}
	_, err = c.session.Dispatch(ctx, wizard.SelectService{ServiceID: state.Services[i].ID})
	return err
}

func (c *cli) chooseStaff(ctx context.Context, state wizard.State) error {
	staff := state.OfferingStaff()
	if len(staff) == 0 {
		fmt.Fprintln(c.out, "Nobody offers this service.")
		return c.back(ctx)
	}

	fmt.Fprintln(c.out, "\nStaff:")
	for i, m := range staff {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, m.Name)
	}
	i, err := c.pick(len(staff))
	if err != nil {
		return c.backOr(ctx, err)
	}
	_, err = c.session.Dispatch(ctx, wizard.SelectStaff{StaffID: staff[i].ID})
	return err
}

func (c *cli) fillDetails(ctx context.Context, state wizard.State) error {
	d := state.Draft

	// After a failed submission every typed field is still in the draft.
	if state.LastError == nil || d.Date == "" {
		date, err := c.prompt("Date (YYYY-MM-DD)")
		if err != nil {
			return c.backOr(ctx, err)
		}
		if _, err := c.session.Dispatch(ctx, wizard.SetDate{Date: date}); err != nil {
			return err
		}
		d.Date = date
		if err := c.askTime(ctx, d); err != nil {
			return err
		}
		if err := c.askContact(ctx, d); err != nil {
			return err
		}
		notes, err := c.prompt("Notes (optional)")
		if err != nil {
			return c.backOr(ctx, err)
		}
		if _, err := c.session.Dispatch(ctx, wizard.SetNotes{Notes: notes}); err != nil {
			return err
		}
	} else {
		answer, err := c.prompt("Submit again? [y] retry, [t] change time, [c] change contact details, [b] back")
		if err != nil {
			return c.backOr(ctx, err)
		}
		switch strings.ToLower(answer) {
		case "t":
			err = c.askTime(ctx, d)
		case "c":
			err = c.askContact(ctx, d)
		}
		if err != nil {
			return err
		}
	}

	_, err := c.session.Dispatch(ctx, wizard.Submit{})
	return err
}

func (c *cli) askTime(ctx context.Context, d wizard.Draft) error {
	c.showSlots(ctx, d.BusinessID, d.ServiceID, d.StaffID, d.Date)
	tm, err := c.prompt("Time (HH:MM or h:mm AM/PM)")
	if err != nil {
		return c.backOr(ctx, err)
	}
	_, err = c.session.Dispatch(ctx, wizard.SetTime{Time: tm})
	return err
}

// askContact prompts for the contact fields; an empty answer keeps the
// value already in the draft.
func (c *cli) askContact(ctx context.Context, d wizard.Draft) error {
	name, err := c.promptKeep("Your name", d.CustomerName)
	if err != nil {
		return c.backOr(ctx, err)
	}
	email, err := c.promptKeep("E-mail", d.CustomerEmail)
	if err != nil {
		return c.backOr(ctx, err)
	}
	phone, err := c.promptKeep("Phone (optional)", d.CustomerPhone)
	if err != nil {
		return c.backOr(ctx, err)
	}
	_, err = c.session.Dispatch(ctx, wizard.SetContact{Name: name, Email: email, Phone: phone})
	return err
}

func (c *cli) showSlots(ctx context.Context, businessID, serviceID, staffID, date string) {
	slotsCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	slots, err := c.client.AvailableSlots(slotsCtx, businessID, serviceID, staffID, date)
	if err != nil {
		fmt.Fprintf(c.out, "  (free times unavailable: %s)\n", describe(toWizardError(err)))
		return
	}
	if len(slots) == 0 {
		fmt.Fprintln(c.out, "  No free times on that day.")
		return
	}
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.StartTime)
	}
	fmt.Fprintf(c.out, "  Free: %s\n", strings.Join(times, " "))
}

var errBack = errors.New("back")

func (c *cli) prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.in.Scan() {
		return "", errQuit
	}
	line := strings.TrimSpace(c.in.Text())
	switch strings.ToLower(line) {
	case "q":
		return "", errQuit
	case "b":
		return "", errBack
	}
	return line, nil
}

func (c *cli) promptKeep(label, current string) (string, error) {
	if current != "" {
		label = fmt.Sprintf("%s [%s]", label, current)
	}
	answer, err := c.prompt(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

func (c *cli) pick(n int) (int, error) {
	for {
		answer, err := c.prompt("Choose")
		if err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(answer)
		if err == nil && i >= 1 && i <= n {
			return i - 1, nil
		}
		fmt.Fprintf(c.out, "Enter a number between 1 and %d.\n", n)
	}
}

func (c *cli) backOr(ctx context.Context, err error) error {
	if errors.Is(err, errBack) {
		return c.back(ctx)
	}
	return err
}

func (c *cli) back(ctx context.Context) error {
	_, err := c.session.Dispatch(ctx, wizard.Back{})
	if errors.Is(err, wizard.ErrWrongStep) {
		return nil
	}
	return err
}

func describe(err error) string {
	switch {
	case errors.Is(err, wizard.ErrSlotConflict):
		return "That time was just taken. Pick another time."
	case errors.Is(err, wizard.ErrNotFound):
		return "The selected business, service or staff member is no longer available."
	case errors.Is(err, wizard.ErrValidation):
		return err.Error()
	case errors.Is(err, wizard.ErrTransient):
		return "The booking service is not responding. Try again."
	case errors.Is(err, errBack):
		return "Nothing to go back to."
	default:
		return err.Error()
	}
}
