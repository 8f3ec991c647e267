// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package cmd

import (
	"errors"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GizzZmo/Arena/pkg/arena"
)

// arena play
func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play training games between the engine and the model",
		Args:  cobra.ExactArgs(0),
		Long: heredoc.Doc(`play runs one or more games of chess between the configured
			UCI engine (White) and the Gemini model (Black), and appends
			every finished game to the training dataset in PGN format.

			The session is configured with a yaml file, looked up at
			./arena.yaml and then under the user's configuration
			directory. The engine binary path must be configured; every
			other option has a sensible default.

			The model's API key is read from the GEMINI_API_KEY
			environment variable. A .env file in the working directory
			is loaded if present.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Secrets come from the environment, not the config file.
			_ = godotenv.Load()

			path, _ := cmd.Flags().GetString("config")
			config, err := arena.LoadConfig(path)
			if err != nil {
				return err
			}

			if cmd.Flag("games").Changed {
				config.Games, _ = cmd.Flags().GetInt("games")
			}

			if err := config.Validate(); err != nil {
				return err
			}

			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				return errors.New("GEMINI_API_KEY environment variable not set")
			}

			source, err := arena.NewGeminiSource(cmd.Context(), apiKey, config.Model.ID)
			if err != nil {
				return err
			}
			defer source.Close()

			logrus.Infof(
				"\x1b[32mArena\x1b[0m: %s (White) vs %s (Black)\n",
				config.Engine.Name, config.Model.Name,
			)

			session, err := arena.NewSession(config, source)
			if err != nil {
				return err
			}

			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to the session's configuration file")
	cmd.Flags().IntP("games", "n", 0, "Number of games to play this session")

	return cmd
}
