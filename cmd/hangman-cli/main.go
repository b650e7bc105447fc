// cmd/hangman-cli/main.go
//
// Terminal front-end for the evil hangman engine. Drives the same
// state-transition API as the HTTP server: pick a word length from the
// suggested list, pick a guess budget, then guess letters until the
// engine declares a win or a loss.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/calegray/evil-hangman/internal/game"
	"github.com/calegray/evil-hangman/internal/words"
)

const (
	minBudget = 6
	maxBudget = 12
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var dictPath string
	flag.StringVar(&dictPath, "d", "", "path to a dictionary file, one word per line (default: embedded list)")
	var verbose bool
	flag.BoolVar(&verbose, "v", false, "show the remaining candidate count after each guess")
	flag.Parse()

	if dictPath != "" {
		os.Setenv("DICTIONARY_FILE", dictPath)
	}
	index, err := words.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}

	eng := game.NewEngine(index, nil)
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to Evil Hangman!")
	fmt.Println("This game cheats by changing the target word based on your guesses.")

	for {
		playOne(eng, in, verbose)
		if !promptYes(in, "Would you like to play again? (y/n): ") {
			fmt.Println("Thanks for playing Evil Hangman!")
			return
		}
	}
}

// playOne runs a single game from setup to completion.
func playOne(eng *game.Engine, in *bufio.Scanner, verbose bool) {
	lengths := eng.Lengths()
	fmt.Printf("Available word lengths: %v\n", lengths)

	wordLength := promptInt(in, "Enter word length: ", func(n int) bool {
		for _, l := range lengths {
			if l == n {
				return true
			}
		}
		fmt.Printf("Please enter a valid word length from %v\n", lengths)
		return false
	})

	maxGuesses := promptInt(in, fmt.Sprintf("Enter maximum number of guesses (%d-%d): ", minBudget, maxBudget), func(n int) bool {
		if n >= minBudget && n <= maxBudget {
			return true
		}
		fmt.Printf("Please enter a number between %d and %d\n", minBudget, maxBudget)
		return false
	})

	g, err := eng.StartGame(wordLength, maxGuesses)
	if err != nil {
		fmt.Printf("Failed to start game: %v\n", err)
		return
	}
	fmt.Printf("\n%s\n", g.Message)

	for !g.Finished {
		printState(g, verbose)
		letter := promptLetter(in)
		if _, err := eng.Guess(g, letter); err != nil {
			switch err {
			case game.ErrAlreadyGuessed:
				fmt.Printf("You already guessed %q. Try another letter.\n", string(letter))
			default:
				fmt.Println("Please enter a single letter")
			}
			continue
		}
		fmt.Println(g.Message)
	}
	printState(g, verbose)
}

// printState renders the pattern and bookkeeping the way players expect:
// letters spaced out, blanks as underscores.
func printState(g *game.Game, verbose bool) {
	snap := g.Snapshot()
	fmt.Println("\n" + strings.Repeat("=", 40))
	fmt.Printf("Word: %s\n", spaced(snap.Pattern))
	fmt.Printf("Guesses left: %d\n", snap.GuessesLeft)
	fmt.Printf("Guessed letters: %s\n", strings.Join(snap.GuessedLetters, ", "))
	if verbose {
		fmt.Printf("Remaining possible words: %d\n", snap.RemainingWords)
	}
	fmt.Println(strings.Repeat("=", 40) + "\n")
}

func spaced(pattern string) string {
	return strings.Join(strings.Split(pattern, ""), " ")
}

// promptInt reads lines until one parses as an int accepted by valid.
func promptInt(in *bufio.Scanner, prompt string, valid func(int) bool) int {
	for {
		fmt.Print(prompt)
		if !in.Scan() {
			os.Exit(0)
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil {
			fmt.Println("Please enter a valid number")
			continue
		}
		if valid(n) {
			return n
		}
	}
}

// promptLetter reads lines until one is a single letter.
func promptLetter(in *bufio.Scanner) rune {
	for {
		fmt.Print("Enter your guess (a single letter): ")
		if !in.Scan() {
			os.Exit(0)
		}
		s := strings.TrimSpace(strings.ToLower(in.Text()))
		if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
			return rune(s[0])
		}
		fmt.Println("Please enter a single letter")
	}
}

func promptYes(in *bufio.Scanner, prompt string) bool {
	fmt.Print(prompt)
	if !in.Scan() {
		return false
	}
	return strings.TrimSpace(strings.ToLower(in.Text())) == "y"
}
