package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"golden-brain/internal/app"
	"golden-brain/internal/bank"
	"golden-brain/internal/domain"
	"golden-brain/internal/infra/memory"
)

func newGame(t *testing.T) *app.Game {
	t.Helper()
	sets, err := bank.Default()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	questions := memory.NewQuestionRepository(memory.NewStaticLoader(sets), 0)
	return app.NewGame(app.NewRegistry(), questions, memory.NewSessionStore(), app.WithSeed(42))
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// answerAll confirms the same position for n questions.
func answerAll(n int, position string) []string {
	var lines []string
	for i := 0; i < n; i++ {
		lines = append(lines, position, "y")
	}
	return lines
}

func run(t *testing.T, game *app.Game, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := New(game, script(lines...), &out).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func expectContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Fatalf("expected output to contain %q\n%s", w, out)
		}
	}
}

func TestPlayThroughAndLeaderboard(t *testing.T) {
	game := newGame(t)

	lines := []string{"Ada", "Ada Lovelace", "1", "2", "1", "n"}
	lines = append(lines, answerAll(10, "1")...)
	lines = append(lines, "n", "2", "2", "abc", "3", "q", "q", "q", "y")
	out := run(t, game, lines...)

	expectContains(t, out,
		"Invalid input. Please enter both your first and last name",
		"Ada Lovelace score initialized",
		"Your score was 8 out of 20",
		"And your highest score in Cars was: 8!",
		"Ada Lovelace holds a highest score of 8 points in Cars!",
		"Congratulations! You now have the highest score!",
		"The correct answers were:",
		"Please enter a number!",
		"Leaderboard Top3:",
		"There are only 1 players that have played.",
		"1. Ada Lovelace (8 points) *",
		"No player has a score in Animals yet!",
		"Thank you for playing!",
	)

	player, err := game.Registry().Player("Ada Lovelace")
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if player.Best(domain.Cars) != 8 || player.Records[domain.Cars].Current != 8 {
		t.Fatalf("unexpected Cars record %+v", player.Records[domain.Cars])
	}
}

func TestDeclinedAnswerDoesNotCount(t *testing.T) {
	game := newGame(t)

	// Every question is first answered with 3 and declined.
	lines := []string{"Ada Lovelace", "1", "1"}
	for i := 0; i < 10; i++ {
		lines = append(lines, "3", "n", "2", "y")
	}
	lines = append(lines, "n", "q", "y")
	out := run(t, game, lines...)

	expectContains(t, out, "Your score was 9 out of 20")
}

func TestRetryKeepsBestScore(t *testing.T) {
	game := newGame(t)

	lines := []string{"Ada Lovelace", "1", "2"}
	lines = append(lines, answerAll(10, "1")...)
	lines = append(lines, "y")
	lines = append(lines, answerAll(10, "4")...)
	lines = append(lines, "n", "q", "y")
	out := run(t, game, lines...)

	expectContains(t, out,
		"Your score was 6 out of 20",
		"And your highest score in Cars was: 8!",
	)
	if strings.Count(out, "Congratulations!") != 1 {
		t.Fatalf("expected a single congratulation\n%s", out)
	}
}

func TestAbortLeavesRegistryUntouched(t *testing.T) {
	game := newGame(t)

	out := run(t, game, "Ada Lovelace", "1", "3", "1", "y", "q", "n", "q", "y", "q", "y")
	if strings.Contains(out, "Your score was") {
		t.Fatalf("aborted session must not show a summary\n%s", out)
	}

	player, err := game.Registry().Player("Ada Lovelace")
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if got := player.Records[domain.Animals]; got.Best != 0 || got.Current != 0 {
		t.Fatalf("expected Animals untouched, got %+v", got)
	}
	if len(game.ActiveSessions()) != 0 {
		t.Fatalf("expected aborted session released")
	}
}

func TestLogoutAndSecondPlayer(t *testing.T) {
	game := newGame(t)

	out := run(t, game,
		"Ada Lovelace", "9", "maybe", "y",
		"Grace Hopper", "2", "1", "q", "q",
		"q", "y",
	)
	expectContains(t, out,
		"Please answer Y or N.",
		"Ada Lovelace has just logged out!",
		"Grace Hopper score initialized",
		"Player list:\nAda Lovelace\nGrace Hopper\n",
	)
}

func TestScoresAndRules(t *testing.T) {
	game := newGame(t)

	lines := []string{"Ada Lovelace", "1", "3"}
	lines = append(lines, answerAll(10, "1")...)
	lines = append(lines, "n", "2", "3", "q", "q", "3", "x", "q", "7", "q", "y")
	out := run(t, game, lines...)

	expectContains(t, out,
		"Ada Lovelace =>\nAnimals => 12 points\n",
		"ComputerScience => Has not played in this category yet!",
		"please read these rules",
		"Please choose 1, 2, 3, 9 or q.",
	)
}

func TestEndOfInputStopsCleanly(t *testing.T) {
	game := newGame(t)

	out := run(t, game, "Ada Lovelace", "1", "1", "2")
	expectContains(t, out, "Are you sure? Y/N")
	if len(game.ActiveSessions()) != 0 {
		t.Fatalf("expected the open session to be aborted at end of input")
	}
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(newGame(t), script("Ada Lovelace"), &out).Run(ctx)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
