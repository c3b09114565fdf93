package main

import (
	"encoding/json"
	"fmt"
	"os"

	bcf "github.com/logicossoftware/go-bcf"
	"github.com/spf13/cobra"
)

var inspectJSON bool

type topicSummary struct {
	GUID       string `json:"guid"`
	Type       string `json:"type,omitempty"`
	Status     string `json:"status,omitempty"`
	Title      string `json:"title"`
	Author     string `json:"author,omitempty"`
	Created    string `json:"created,omitempty"`
	Comments   int    `json:"comments"`
	Viewpoints int    `json:"viewpoints"`
}

type projectSummary struct {
	ProjectID string         `json:"project_id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Version   string         `json:"version"`
	Topics    []topicSummary `json:"topics"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print the topics of a BCF container",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := decodeFile(args[0])

		s := projectSummary{ProjectID: p.ProjectID, Name: p.Name, Version: p.Version}
		for _, m := range p.Markups {
			s.Topics = append(s.Topics, topicSummary{
				GUID:       m.Topic.GUID,
				Type:       m.Topic.TopicType,
				Status:     m.Topic.TopicStatus,
				Title:      m.Topic.Title,
				Author:     m.Topic.CreationAuthor,
				Created:    m.Topic.CreationDate,
				Comments:   len(m.Topic.Comments),
				Viewpoints: len(m.Viewpoints),
			})
		}

		if inspectJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(s); err != nil {
				logger.Fatal().Err(err).Msg("encoding summary")
			}
			return
		}

		fmt.Printf("%s (%s): BCF %s, %d topics\n", s.Name, s.ProjectID, s.Version, len(s.Topics))
		for _, t := range s.Topics {
			fmt.Printf("  [%s/%s] %s (%d viewpoints, %d comments)\n",
				t.Type, t.Status, t.Title, t.Viewpoints, t.Comments)
		}
	},
}

func decodeFile(path string) *bcf.Project {
	b, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal().Err(err).Str("file", path).Msg("reading input")
	}
	p, err := bcf.DecodeBytes(b,
		bcf.WithLenientRead(lenient),
		bcf.WithReadLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Str("file", path).Msg("decoding container")
	}
	return p
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output in JSON format")
}
