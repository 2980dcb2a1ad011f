// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/taibuivan/aidash/internal/app"
	"github.com/taibuivan/aidash/internal/autosphere"
	"github.com/taibuivan/aidash/internal/gateway"
	"github.com/taibuivan/aidash/internal/hr"
	"github.com/taibuivan/aidash/internal/nav"
	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/constants"
	"github.com/taibuivan/aidash/internal/session"
	"github.com/taibuivan/aidash/internal/textfmt"
	"github.com/taibuivan/aidash/pkg/pointer"
)

// environment is what every command runs against.
type environment struct {
	dashboard *app.Dashboard
	out       io.Writer
	in        io.Reader
	style     theme
}

type command struct {
	usage   string
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

var commandOrder = []string{"login", "logout", "whoami", "nav", "open", "cv", "policy", "technical", "chat", "bookings"}

var commands = map[string]command{
	"login":     {"login [-u user] [-p pass]", "sign in (password read from stdin when omitted)", runLogin},
	"logout":    {"logout", "end the session", runLogout},
	"whoami":    {"whoami", "show the signed-in user", runWhoami},
	"nav":       {"nav", "list the sections you can open", runNav},
	"open":      {"open <path>", "resolve a dashboard path through the route guard", runOpen},
	"cv":        {"cv --jd text <cv files...>", "evaluate CVs against a job description", runCV},
	"policy":    {"policy upload|ask", "upload policy documents or ask about them", runPolicy},
	"technical": {"technical generate|evaluate", "generate interview questions or score answers", runTechnical},
	"chat":      {"chat [--transcript f] <message>", "talk to the AutoSphere assistant", runChat},
	"bookings":  {"bookings create|search|get", "manage service and test drive bookings", runBookings},
}

func newFlags(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	return flagSet
}

// # Guards and Reporting

// enter applies the route guard for the panel behind path.
func enter(env *environment, path string) error {
	target, err := env.dashboard.Resolve(path)
	if errors.Is(err, nav.ErrForbiddenRoute) {
		return fmt.Errorf("%s is not available to your role", path)
	}
	if err != nil {
		return err
	}
	if target == constants.PathLogin {
		return errors.New("not logged in: run dashboard login")
	}
	return nil
}

// report prints a failed action's display message.
func report(env *environment, err error, fallback string) error {
	if err == nil {
		return nil
	}
	message := apperr.Message(err, fallback)
	if apperr.HasCode(err, apperr.CodeAuthorizationExpired) {
		message = gateway.ExpiredMessage
	}
	fmt.Fprintln(env.out, env.style.failure.Render(message))
	return errReported
}

// # Session

func runLogin(ctx context.Context, env *environment, args []string) error {
	flagSet := newFlags("login")
	username := flagSet.StringP("username", "u", "", "username")
	password := flagSet.StringP("password", "p", "", "password")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if *password == "" && *username != "" {
		line, err := bufio.NewReader(env.input()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	err := env.dashboard.Session.Login(ctx, *username, *password)
	if errors.Is(err, session.ErrSessionActive) {
		user := env.dashboard.Session.State().Snapshot().User
		return fmt.Errorf("already logged in as %s: run dashboard logout first", user.Username)
	}
	if err := report(env, err, "Login failed"); err != nil {
		return err
	}

	snapshot := env.dashboard.Session.State().Snapshot()
	fmt.Fprintln(env.out, env.style.success.Render(fmt.Sprintf("Welcome back, %s!", snapshot.User.Username)))
	fmt.Fprintln(env.out, env.style.muted.Render("Role: "+snapshot.Role()))
	return nil
}

func runLogout(ctx context.Context, env *environment, _ []string) error {
	env.dashboard.Session.Logout(ctx)
	fmt.Fprintln(env.out, "Logged out")
	return nil
}

func runWhoami(_ context.Context, env *environment, _ []string) error {
	snapshot := env.dashboard.Session.State().Snapshot()
	if !snapshot.IsAuthenticated {
		fmt.Fprintln(env.out, "Not logged in")
		return nil
	}

	fmt.Fprintln(env.out, env.style.title.Render(snapshot.User.Username))
	fmt.Fprintf(env.out, "Role:    %s\n", snapshot.Role())
	fmt.Fprintf(env.out, "User ID: %d\n", snapshot.User.ID)
	if expiry, ok := gateway.TokenExpiry(snapshot.Token); ok {
		fmt.Fprintf(env.out, "Expires: %s\n", expiry.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runNav(_ context.Context, env *environment, _ []string) error {
	renderMenu(env, env.dashboard.Menu())
	return nil
}

func runOpen(_ context.Context, env *environment, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: dashboard open <path>")
	}
	target, err := env.dashboard.Resolve(args[0])
	if errors.Is(err, nav.ErrForbiddenRoute) {
		fmt.Fprintln(env.out, env.style.failure.Render("Access denied"))
		return errReported
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(env.out, target)
	return nil
}

// # HR AI Platform

func runCV(ctx context.Context, env *environment, args []string) error {
	flagSet := newFlags("cv")
	jd := flagSet.String("jd", "", "job description text")
	jdFile := flagSet.String("jd-file", "", "read the job description from a file")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if err := enter(env, "/hr/cv-evaluation"); err != nil {
		return err
	}

	description, err := textArg(*jd, *jdFile)
	if err != nil {
		return err
	}
	files, closeFiles, err := openFiles(flagSet.Args())
	if err != nil {
		return err
	}
	defer closeFiles()

	panel := env.dashboard.HR.CV
	if err := report(env, panel.Evaluate(ctx, description, files), hr.FallbackCVEvaluate); err != nil {
		return err
	}
	renderCVEvaluation(env, panel.Snapshot().Data)
	return nil
}

func runPolicy(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: dashboard policy upload <files...> | ask <question>")
	}
	if err := enter(env, "/hr/policy"); err != nil {
		return err
	}
	panel := env.dashboard.HR.Policy

	switch args[0] {
	case "upload":
		files, closeFiles, err := openFiles(args[1:])
		if err != nil {
			return err
		}
		defer closeFiles()
		if err := report(env, panel.Upload(ctx, files), hr.FallbackPolicyUpload); err != nil {
			return err
		}
		upload := panel.Snapshot().Data.LastUpload
		fmt.Fprintln(env.out, env.style.success.Render(upload.Message))
		fmt.Fprintf(env.out, "Document IDs: %v\n", upload.DocumentIDs)
		return nil

	case "ask":
		flagSet := newFlags("policy ask")
		plain := flagSet.Bool("plain", false, "plain headings")
		if err := flagSet.Parse(args[1:]); err != nil {
			return err
		}
		if err := report(env, panel.Ask(ctx, strings.Join(flagSet.Args(), " ")), hr.FallbackPolicyAsk); err != nil {
			return err
		}
		fmt.Fprintln(env.out, textfmt.Format(panel.Snapshot().Data.Answer, env.style.text(*plain)))
		return nil

	default:
		return fmt.Errorf("unknown policy command %q", args[0])
	}
}

func runTechnical(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: dashboard technical generate --jd text --cv file | evaluate --questions file --answer a...")
	}
	if err := enter(env, "/hr/technical"); err != nil {
		return err
	}
	panel := env.dashboard.HR.Technical

	switch args[0] {
	case "generate":
		flagSet := newFlags("technical generate")
		jd := flagSet.String("jd", "", "job description text")
		jdFile := flagSet.String("jd-file", "", "read the job description from a file")
		cvPath := flagSet.String("cv", "", "candidate CV file")
		save := flagSet.String("save", "", "write the questions as JSON for a later evaluate")
		if err := flagSet.Parse(args[1:]); err != nil {
			return err
		}
		description, err := textArg(*jd, *jdFile)
		if err != nil {
			return err
		}

		var cv *gateway.File
		if *cvPath != "" {
			files, closeFiles, err := openFiles([]string{*cvPath})
			if err != nil {
				return err
			}
			defer closeFiles()
			cv = &files[0]
		}

		if err := report(env, panel.Generate(ctx, description, cv), hr.FallbackTechnicalGenerate); err != nil {
			return err
		}
		questions := panel.Snapshot().Data.Questions
		for i, question := range questions {
			fmt.Fprintf(env.out, "%s %s\n", env.style.title.Render(fmt.Sprintf("Q%d.", i+1)), question)
		}
		if *save != "" {
			return writeJSON(*save, hr.TechnicalQuestions{Questions: questions})
		}
		return nil

	case "evaluate":
		flagSet := newFlags("technical evaluate")
		questionsPath := flagSet.String("questions", "", "questions JSON written by generate --save")
		answers := flagSet.StringArray("answer", nil, "answer, once per question in order")
		if err := flagSet.Parse(args[1:]); err != nil {
			return err
		}

		var loaded hr.TechnicalQuestions
		if *questionsPath != "" {
			if err := readJSON(*questionsPath, &loaded); err != nil {
				return err
			}
		}
		if err := panel.Update(func(hr.TechnicalState) hr.TechnicalState {
			return hr.TechnicalState{Questions: loaded.Questions, Answers: make([]string, len(loaded.Questions))}
		}); err != nil {
			return err
		}
		for i, answer := range *answers {
			if err := panel.SetAnswer(i, answer); err != nil {
				return err
			}
		}

		if err := report(env, panel.Evaluate(ctx), hr.FallbackTechnicalEvaluate); err != nil {
			return err
		}
		renderTechnicalEvaluation(env, *panel.Snapshot().Data.Evaluation)
		return nil

	default:
		return fmt.Errorf("unknown technical command %q", args[0])
	}
}

// # AutoSphere Motors

func runChat(ctx context.Context, env *environment, args []string) error {
	flagSet := newFlags("chat")
	transcriptPath := flagSet.String("transcript", "", "JSON file carrying the conversation between invocations")
	reset := flagSet.Bool("reset", false, "start a new conversation")
	plain := flagSet.Bool("plain", false, "plain headings")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if err := enter(env, "/autosphere/chat"); err != nil {
		return err
	}
	panel := env.dashboard.AutoSphere.Chat

	if *transcriptPath != "" && !*reset {
		var transcript autosphere.Transcript
		err := readJSON(*transcriptPath, &transcript)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := panel.Update(func(autosphere.Transcript) autosphere.Transcript { return transcript }); err != nil {
			return err
		}
	}

	message := strings.Join(flagSet.Args(), " ")
	if err := report(env, panel.Send(ctx, message), autosphere.FallbackChat); err != nil {
		return err
	}

	transcript := panel.Snapshot().Data
	if n := len(transcript.Messages); n > 0 && transcript.Messages[n-1].Role == autosphere.ChatRoleAssistant {
		fmt.Fprintln(env.out, textfmt.Format(transcript.Messages[n-1].Content, env.style.text(*plain)))
	}
	if transcript.BookingFlow {
		fmt.Fprintln(env.out, env.style.muted.Render("Tip: dashboard bookings create --name ... --phone ... --model ..."))
	}
	if *transcriptPath != "" {
		return writeJSON(*transcriptPath, transcript)
	}
	return nil
}

func runBookings(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: dashboard bookings create|search|get")
	}
	if err := enter(env, "/autosphere/bookings"); err != nil {
		return err
	}
	panel := env.dashboard.AutoSphere.Bookings

	switch args[0] {
	case "create":
		flagSet := newFlags("bookings create")
		kind := flagSet.String("type", string(autosphere.BookingService), "Service or \"Test Drive\"")
		name := flagSet.String("name", "", "customer name")
		phone := flagSet.String("phone", "", "customer phone")
		model := flagSet.String("model", "", "vehicle model")
		date := flagSet.String("date", "", "preferred date (YYYY-MM-DD)")
		request := flagSet.String("request", "", "free-text request, e.g. \"next week\"")
		if err := flagSet.Parse(args[1:]); err != nil {
			return err
		}
		bookingType, err := autosphere.ParseBookingType(*kind)
		if err != nil {
			return err
		}

		err = panel.Create(ctx, autosphere.BookingCreate{
			BookingType:     bookingType,
			Name:            *name,
			Phone:           *phone,
			VehicleModel:    *model,
			PreferredDate:   pointer.FromString(*date),
			NaturalLanguage: pointer.FromString(*request),
		})
		if err := report(env, err, autosphere.FallbackCreateBooking); err != nil {
			return err
		}
		created := panel.Snapshot().Data.Created
		fmt.Fprintln(env.out, env.style.success.Render("Booking created successfully! ID: "+created.BookingID))
		renderBookings(env, []autosphere.Booking{*created})
		return nil

	case "search":
		flagSet := newFlags("bookings search")
		id := flagSet.String("id", "", "booking ID")
		phone := flagSet.String("phone", "", "customer phone")
		kind := flagSet.String("type", "", "Service or \"Test Drive\"")
		if err := flagSet.Parse(args[1:]); err != nil {
			return err
		}
		query := autosphere.BookingQuery{BookingID: *id, Phone: *phone}
		if *kind != "" {
			bookingType, err := autosphere.ParseBookingType(*kind)
			if err != nil {
				return err
			}
			query.BookingType = bookingType
		}

		if err := report(env, panel.Search(ctx, query), autosphere.FallbackSearch); err != nil {
			return err
		}
		renderBookings(env, panel.Snapshot().Data.Bookings)
		return nil

	case "get":
		if len(args) != 2 {
			return errors.New("usage: dashboard bookings get <booking id>")
		}
		if err := report(env, panel.Open(ctx, args[1]), autosphere.FallbackGetBooking); err != nil {
			return err
		}
		renderBookings(env, []autosphere.Booking{*panel.Snapshot().Data.Selected})
		return nil

	default:
		return fmt.Errorf("unknown bookings command %q", args[0])
	}
}

// # File Helpers

func (env *environment) input() io.Reader {
	if env.in != nil {
		return env.in
	}
	return os.Stdin
}

// textArg prefers inline text over a file.
func textArg(inline, path string) (string, error) {
	if inline != "" || path == "" {
		return inline, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(content), nil
}

// openFiles opens every path for upload; the returned func closes them.
func openFiles(paths []string) ([]gateway.File, func(), error) {
	files := make([]gateway.File, 0, len(paths))
	var opened []*os.File
	closeAll := func() {
		for _, file := range opened {
			_ = file.Close()
		}
	}

	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open %s: %w", path, err)
		}
		opened = append(opened, file)
		files = append(files, gateway.File{Name: filepath.Base(path), Content: file})
	}
	return files, closeAll, nil
}

func readJSON(path string, target any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, value any) error {
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(content, '\n'), 0o600)
}
