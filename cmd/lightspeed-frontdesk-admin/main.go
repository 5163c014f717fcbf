package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

// A very simple CLI tool for the administration of a running
// lightspeed-frontdesk instance via its HTTP API.

var serverUrl string

func main() {
	rootCmd := &cobra.Command{
		Use:   "lightspeed-frontdesk-admin",
		Short: "administer a running lightspeed-frontdesk server",
	}
	rootCmd.PersistentFlags().StringVarP(&serverUrl, "server", "s", "http://localhost:8000", "base URL of the server")

	roomCmd := &cobra.Command{
		Use:   "room",
		Short: "room administration",
	}

	var hotelName string
	roomCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "create a new front-desk room and print the guest link",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]string{"hotelName": hotelName})
			if err != nil {
				return err
			}
			resp, err := http.Post(serverUrl+"/api/generate-room", "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			return printResponse(resp)
		},
	}
	roomCreateCmd.Flags().StringVar(&hotelName, "hotel-name", "", "display name of the hotel")
	roomCmd.AddCommand(roomCreateCmd)

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "print the server health summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := http.Get(serverUrl + "/health")
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			return printResponse(resp)
		},
	}

	rootCmd.AddCommand(roomCmd, healthCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printResponse(resp *http.Response) error {
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %s: %s", resp.Status, data)
	}
	out := bytes.Buffer{}
	if err := json.Indent(&out, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(out.String())
	return nil
}
