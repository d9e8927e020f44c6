package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Walks one survey end to end against a running server. Pass customer,
// product, and transaction ids as arguments.
func usage() {
	fmt.Println("usage: simulate <customer_id> <product_id> <transaction_id>")
	os.Exit(2)
}

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // LLM calls can be slow, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func call(method, url string, body interface{}) map[string]interface{} {
	resp, respBody, err := sendRequest(method, url, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var parsed map[string]interface{}
	json.Unmarshal(respBody, &parsed)
	prettyPrint(parsed)

	if resp.StatusCode >= 400 {
		color.Red("Aborting after error response")
		os.Exit(1)
	}
	data, _ := parsed["data"].(map[string]interface{})
	return data
}

func main() {
	if len(os.Args) != 4 {
		usage()
	}
	customerId, productId, transactionId := os.Args[1], os.Args[2], os.Args[3]

	color.Cyan("🚀 Starting Survey Flow Simulation\n")

	// 1. Start the survey
	color.Yellow("\n[SURVEY] 1. Start session")
	data := call("POST", "/survey/v1/start", map[string]interface{}{
		"customer_id":    customerId,
		"product_id":     productId,
		"transaction_id": transactionId,
	})
	sessionId, _ := data["session_id"].(string)
	if sessionId == "" {
		color.Red("No session id in response")
		os.Exit(1)
	}

	// 2. Answer until the interview completes, skipping the second question
	cannedAnswers := []string{
		"It does exactly what I hoped for",
		"Setup took about ten minutes",
		"Mostly daily use at home",
		"The battery could last longer",
		"Yes, I would recommend it",
		"Packaging was fine",
	}
	turn := 0
	completed := false
	for !completed {
		if turn == 1 {
			color.Yellow("\n[SURVEY] Skip question 2")
			data = call("POST", "/survey/v1/skip", map[string]interface{}{
				"session_id": sessionId,
			})
		} else {
			answer := cannedAnswers[turn%len(cannedAnswers)]
			color.Yellow("\n[SURVEY] Answer: %s", answer)
			data = call("POST", "/survey/v1/answer", map[string]interface{}{
				"session_id": sessionId,
				"answer":     []string{answer},
			})
		}
		completed, _ = data["completed"].(bool)
		turn++
		if turn > 10 {
			color.Red("Interview did not complete within expected turns")
			os.Exit(1)
		}
	}

	// 3. Revise the first answer, which branches the transcript
	color.Yellow("\n[SURVEY] Edit answer 1")
	call("POST", "/survey/v1/edit", map[string]interface{}{
		"session_id":      sessionId,
		"question_number": 1,
		"answer":          []string{"Honestly it exceeded my expectations"},
	})

	// 4. Answer again until complete
	completed = false
	for !completed {
		answer := cannedAnswers[turn%len(cannedAnswers)]
		color.Yellow("\n[SURVEY] Answer: %s", answer)
		data = call("POST", "/survey/v1/answer", map[string]interface{}{
			"session_id": sessionId,
			"answer":     []string{answer},
		})
		completed, _ = data["completed"].(bool)
		turn++
		if turn > 20 {
			color.Red("Interview did not complete after edit")
			os.Exit(1)
		}
	}

	// 5. Generate candidates
	color.Yellow("\n[REVIEW] Generate candidates")
	data = call("POST", "/review/v1/generate", map[string]interface{}{
		"session_id": sessionId,
	})
	candidates, _ := data["candidates"].([]interface{})
	if len(candidates) == 0 {
		color.Red("No candidates returned")
		os.Exit(1)
	}

	// 6. Pick the balanced draft (index 1 of the canonical tone order)
	index := 1
	if len(candidates) < 2 {
		index = 0
	}
	color.Yellow("\n[REVIEW] Select candidate %d", index)
	call("POST", "/review/v1/select", map[string]interface{}{
		"session_id": sessionId,
		"index":      index,
	})

	// 7. Final transcript for the record
	color.Yellow("\n[SURVEY] Final transcript")
	call("GET", "/survey/v1/session/"+sessionId+"/transcript", nil)

	color.Cyan("\n✅ Survey flow simulation complete")
}
