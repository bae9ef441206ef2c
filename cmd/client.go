package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/abinishjha1/ai-interviewHackathon/internal/ai"
	"github.com/abinishjha1/ai-interviewHackathon/internal/server"

	"github.com/gorilla/websocket"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

const (
	PromptStart = "Start the interview"
	PromptQuit  = "Quit"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Run a terminal interview client against a running server",
	Run: func(cmd *cobra.Command, _ []string) {
		if err := runClient(cmd); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)

	clientCmd.Flags().StringP("url", "u", "ws://localhost:8000"+server.InterviewPath, "websocket url of the interview server")
}

// outboundFrame mirrors every outbound event shape for decoding on the
// client side.
type outboundFrame struct {
	Type    string     `json:"type"`
	Message string     `json:"message"`
	Text    string     `json:"text"`
	Topic   string     `json:"topic"`
	Report  *ai.Report `json:"report"`
}

func runClient(cmd *cobra.Command) error {
	url := cmd.Flag("url").Value.String()

	startPrompt := promptui.Select{
		Label: "Ready?",
		Items: []string{PromptStart, PromptQuit},
	}

	_, action, err := startPrompt.Run()
	if err != nil {
		return err
	}
	if action == PromptQuit {
		return nil
	}

	screenContent, err := (&promptui.Prompt{Label: "Screen content (project text)"}).Run()
	if err != nil {
		return err
	}

	speech, err := (&promptui.Prompt{Label: "Spoken introduction"}).Run()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	start := server.InboundEvent{
		Type:          server.EventStart,
		ScreenContent: screenContent,
		StudentSpeech: speech,
	}
	if err := conn.WriteJSON(start); err != nil {
		return fmt.Errorf("send start event: %w", err)
	}

	for {
		var frame outboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return fmt.Errorf("read event: %w", err)
		}

		switch frame.Type {
		case server.EventStatus:
			fmt.Println(frame.Message)
		case server.EventQuestion:
			fmt.Printf("\n[%s]\n%s\n\n", frame.Topic, frame.Text)

			answer, err := (&promptui.Prompt{Label: "Your answer"}).Run()
			if err != nil {
				return err
			}

			reply := server.InboundEvent{Type: server.EventAnswer, Content: answer}
			if err := conn.WriteJSON(reply); err != nil {
				return fmt.Errorf("send answer event: %w", err)
			}
		case server.EventEnd:
			pretty, _ := json.MarshalIndent(frame.Report, "", "  ")
			fmt.Printf("\nInterview finished. Report:\n%s\n", pretty)
			return nil
		case server.EventError:
			return errors.New("interview failed: " + frame.Message)
		default:
			return fmt.Errorf("unexpected event type: %s", frame.Type)
		}
	}
}
