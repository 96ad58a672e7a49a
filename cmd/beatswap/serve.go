// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/ik5/beatswap/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serve beat swapping over HTTP. POST an audio file to /beatswap,
/sidechain or /beatmap; options go in the query string.

Example:
  beatswap serve --port 8080
  curl --data-binary @song.wav "localhost:8080/beatswap?pattern=1,3,2,4" > out.wav`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			s := server.New(server.Options{Config: cfg, Cache: a.cache, Logger: a.log})
			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")

	return cmd
}
