// Package console is the line-based terminal front end of the game.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golden-brain/internal/app"
	"golden-brain/internal/domain"
)

// Console reads one selection per line and writes plain text. Invalid input
// is answered with a hint and the prompt is repeated.
type Console struct {
	game   *app.Game
	in     *bufio.Reader
	out    io.Writer
	player string
}

func New(game *app.Game, in io.Reader, out io.Writer) *Console {
	return &Console{
		game: game,
		in:   bufio.NewReader(in),
		out:  out,
	}
}

// Run drives login and the main menu until the player quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	err := c.run(ctx)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		return nil
	}
	return err
}

func (c *Console) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.player == "" {
			if err := c.login(); err != nil {
				return err
			}
		}

		c.mainMenu()
		choice, err := c.readLine()
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "1":
			if err := c.play(ctx); err != nil {
				return err
			}
		case "2":
			if err := c.leaderboards(); err != nil {
				return err
			}
		case "3":
			c.rules()
			if err := c.waitForReturn(); err != nil {
				return err
			}
		case "9":
			ok, err := c.confirm()
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(c.out, "%s has just logged out!\n", c.player)
				c.player = ""
			}
		case "q":
			ok, err := c.confirm()
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(c.out, "Thank you for playing!")
				fmt.Fprintln(c.out, "Please come back soon...")
				return nil
			}
		default:
			fmt.Fprintln(c.out, "Please choose 1, 2, 3, 9 or q.")
		}
	}
}

func (c *Console) login() error {
	fmt.Fprintln(c.out, "Hello and welcome to the game!")
	fmt.Fprintln(c.out, "Please enter your first and last name to login:")
	for {
		name, err := c.readLine()
		if err != nil {
			return err
		}
		player, created, err := c.game.Login(name)
		if errors.Is(err, domain.ErrInvalidName) {
			fmt.Fprintln(c.out, "Invalid input. Please enter both your first and last name separated by a space.")
			continue
		}
		if err != nil {
			return err
		}
		c.player = player.Name
		if created {
			fmt.Fprintf(c.out, "%s score initialized\n", player.Name)
		} else {
			fmt.Fprintf(c.out, "%s logged in.\n", player.Name)
		}
		return nil
	}
}

func (c *Console) mainMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Welcome, %s. Please choose your destination!\n", c.player)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "1. Let's play!")
	fmt.Fprintln(c.out, "2. Leaderboards")
	fmt.Fprintln(c.out, "3. Game rules")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "9. Logout")
	fmt.Fprintln(c.out, "q. Leave :(")
}

// play runs sessions of one category until the player declines a retry.
func (c *Console) play(ctx context.Context) error {
	category, ok, err := c.selectCategory()
	if err != nil || !ok {
		return err
	}
	for {
		summary, completed, err := c.playSession(ctx, category)
		if err != nil || !completed {
			return err
		}
		c.renderSummary(summary)

		fmt.Fprintln(c.out, "Would you like to retry? Y/N")
		retry, err := c.yesNo()
		if err != nil || !retry {
			return err
		}
	}
}

func (c *Console) selectCategory() (domain.Category, bool, error) {
	categories := domain.Categories()
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Hello %s, and please enjoy the game!\n", c.player)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Category list:")
	for i, category := range categories {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, category)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Please select your category or press q to quit.")

	for {
		choice, err := c.readLine()
		if err != nil {
			return 0, false, err
		}
		if strings.EqualFold(choice, "q") {
			return 0, false, nil
		}
		if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(categories) {
			return categories[n-1], true, nil
		}
		fmt.Fprintf(c.out, "Please choose 1-%d or q.\n", len(categories))
	}
}

// playSession asks every question once. An answer only counts after the
// player confirms it; declining re-asks the same question.
func (c *Console) playSession(ctx context.Context, category domain.Category) (domain.SessionSummary, bool, error) {
	session, err := c.game.StartSession(ctx, c.player, category)
	if err != nil {
		return domain.SessionSummary{}, false, err
	}
	defer func() {
		if session.State() == app.StateInProgress {
			c.game.Abort(session)
		}
	}()

	for session.State() == app.StateInProgress {
		q, err := session.Current()
		if err != nil {
			return domain.SessionSummary{}, false, err
		}
		c.renderQuestion(session, q)

		choice, err := c.readLine()
		if err != nil {
			return domain.SessionSummary{}, false, err
		}
		if strings.EqualFold(choice, "q") {
			ok, err := c.confirm()
			if err != nil {
				return domain.SessionSummary{}, false, err
			}
			if ok {
				c.game.Abort(session)
				return domain.SessionSummary{}, false, nil
			}
			continue
		}

		position, err := strconv.Atoi(choice)
		if err != nil || position < 1 || position > domain.AnswersPerQuestion {
			fmt.Fprintf(c.out, "Please choose 1-%d or q.\n", domain.AnswersPerQuestion)
			continue
		}
		ok, err := c.confirm()
		if err != nil {
			return domain.SessionSummary{}, false, err
		}
		if !ok {
			continue
		}
		if _, err := c.game.Commit(session, position); err != nil {
			return domain.SessionSummary{}, false, err
		}
	}

	summary, err := c.game.Complete(ctx, session)
	if err != nil {
		return domain.SessionSummary{}, false, err
	}
	return summary, true, nil
}

func (c *Console) renderQuestion(session *app.Session, q domain.Question) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Current score: %d\n", session.Running())
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Q%d: %s\n", session.Answered()+1, q.Text)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Select your answer:")
	for _, a := range q.Answers {
		fmt.Fprintf(c.out, "%d. %s\n", a.Number, a.Text)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Press q to return.")
}

func (c *Console) renderSummary(s domain.SessionSummary) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Hope you enjoyed it %s!\n", s.Player)
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Your score was %d out of %d\n", s.Score, s.MaxScore)
	fmt.Fprintf(c.out, "And your highest score in %s was: %d!\n", s.Category, s.Best)
	if s.TopPlayer != "" {
		fmt.Fprintf(c.out, "%s holds a highest score of %d points in %s!\n", s.TopPlayer, s.TopScore, s.Category)
	} else {
		fmt.Fprintf(c.out, "No player has a score in %s yet!\n", s.Category)
	}
	if s.NewTop {
		fmt.Fprintln(c.out, "Congratulations! You now have the highest score!")
	}

	fmt.Fprintln(c.out, "The correct answers were:")
	fmt.Fprintln(c.out)
	for _, entry := range s.AnswerKey {
		fmt.Fprintf(c.out, "%d. %s\n\t%d. %s (%d points)\n\n",
			entry.QuestionID, entry.Question, entry.Answer.Number, entry.Answer.Text, entry.Answer.Score)
	}
}

func (c *Console) rules() {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Hello %s, please read these rules.\n", c.player)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Objective:")
	fmt.Fprintln(c.out, "    Answer as many questions correctly as possible to maximize your score.")
	fmt.Fprintln(c.out, "Each question has four answer options:")
	fmt.Fprintf(c.out, "    Perfect answer: awards %d points.\n", domain.ScorePerfect)
	fmt.Fprintf(c.out, "    Half-point answers: award %d point each. Some questions have one or two of these.\n", domain.ScoreHalf)
	fmt.Fprintln(c.out, "    Incorrect answer: awards no points.")
	fmt.Fprintln(c.out, "Game progression:")
	fmt.Fprintln(c.out, "    A question is presented and you choose one of the four options.")
	fmt.Fprintln(c.out, "    Confirm your choice to lock it in, then the next question follows.")
	fmt.Fprintln(c.out, "Winning the game:")
	fmt.Fprintln(c.out, "    At the end of all questions your total score is calculated.")
	fmt.Fprintln(c.out, "    Your best score per category counts on the leaderboard.")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Press q to return.")
}

// confirm asks the standard Y/N question before a committing action.
func (c *Console) confirm() (bool, error) {
	fmt.Fprintln(c.out, "Are you sure? Y/N")
	return c.yesNo()
}

func (c *Console) yesNo() (bool, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(c.out, "Please answer Y or N.")
		}
	}
}

func (c *Console) waitForReturn() error {
	for {
		line, err := c.readLine()
		if err != nil {
			return err
		}
		if strings.EqualFold(line, "q") {
			return nil
		}
	}
}

// readLine returns the next trimmed line. A final line without a newline is
// still returned; io.EOF comes on the following call.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
