package console

import (
	"fmt"
	"strconv"
	"strings"

	"golden-brain/internal/domain"
)

func (c *Console) leaderboards() error {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintf(c.out, "Hello %s!\n", c.player)
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1. Player list")
		fmt.Fprintln(c.out, "2. Top players")
		fmt.Fprintln(c.out, "3. Player scores")
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Press q to return.")

		choice, err := c.readLine()
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "1":
			c.playerList()
		case "2":
			n, err := c.readCount()
			if err != nil {
				return err
			}
			c.topPlayers(n)
		case "3":
			c.scores()
		case "q":
			return nil
		default:
			fmt.Fprintln(c.out, "Please choose 1, 2, 3 or q.")
			continue
		}
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Press q to return.")
		if err := c.waitForReturn(); err != nil {
			return err
		}
	}
}

func (c *Console) playerList() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Player list:")
	for name := range c.game.Registry().AllPlayers() {
		fmt.Fprintln(c.out, name)
	}
}

func (c *Console) readCount() (int, error) {
	fmt.Fprintln(c.out, "How many top players do you want to see?")
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n > 0 {
			return n, nil
		}
		fmt.Fprintln(c.out, "Please enter a number!")
	}
}

func (c *Console) topPlayers(n int) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Leaderboard Top%d:\n", n)
	for _, category := range domain.Categories() {
		lb := c.game.Leaderboard(category, n)
		fmt.Fprintln(c.out)
		if lb.Clamped {
			fmt.Fprintf(c.out, "There are only %d players that have played.\n", lb.Available)
		}
		fmt.Fprintf(c.out, "%s =>\n", category)
		if len(lb.Entries) == 0 {
			fmt.Fprintf(c.out, "No player has a score in %s yet!\n", category)
			continue
		}
		for _, e := range lb.Entries {
			fmt.Fprintf(c.out, "%d. %s (%d points)", e.Rank, e.PlayerName, e.BestScore)
			if e.Marker != "" {
				fmt.Fprintf(c.out, " %s", e.Marker)
			}
			fmt.Fprintln(c.out)
		}
	}
}

func (c *Console) scores() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Leaderboard with scores:")
	for _, row := range c.game.Scoreboard() {
		fmt.Fprintln(c.out)
		fmt.Fprintf(c.out, "%s =>\n", row.PlayerName)
		for _, s := range row.Scores {
			if s.Played {
				fmt.Fprintf(c.out, "%s => %d points\n", s.Category, s.BestScore)
			} else {
				fmt.Fprintf(c.out, "%s => Has not played in this category yet!\n", s.Category)
			}
		}
	}
}
