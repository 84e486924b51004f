package veinminer

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"go.minekube.com/veinminer/pkg/network"
	"go.minekube.com/veinminer/pkg/proto"
)

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a VeinMiner plugin message payload",
		ArgsUsage: "<hex payload>",
		Description: `Decode one hex encoded payload of the veinminer:veinminer channel
and dump the decoded message:

	veinminer decode --direction serverbound 0001`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "direction",
				Aliases: []string{"dir"},
				Usage:   "Direction of the payload: serverbound or clientbound",
				Value:   "serverbound",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one hex payload argument", 1)
			}
			data, err := hex.DecodeString(strings.TrimPrefix(strings.ReplaceAll(c.Args().First(), " ", ""), "0x"))
			if err != nil {
				return cli.Exit(fmt.Errorf("invalid hex payload: %w", err), 1)
			}

			var msg proto.Message
			switch strings.ToLower(c.String("direction")) {
			case "serverbound", "server":
				msg, err = network.Protocol.DecodeServerbound(data)
			case "clientbound", "client":
				msg, err = network.Protocol.DecodeClientbound(data)
			default:
				return cli.Exit(fmt.Sprintf("unknown direction %q (valid: serverbound, clientbound)", c.String("direction")), 1)
			}
			if err != nil {
				return cli.Exit(fmt.Errorf("error decoding payload: %w", err), 1)
			}
			spew.Fdump(c.App.Writer, msg)
			return nil
		},
	}
}
