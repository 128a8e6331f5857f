// Manual smoke test for the workspace API. Run the server first, then:
//
//	go run ./scripts/test_workspace_api.go <path-to-pdf>
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendJSON(method, url string, body interface{}) (*http.Response, []byte, error) {
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

	client := &http.Client{} // No timeout; mind map generation can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func uploadPdf(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	writer.Close()

	resp, err := http.Post(baseURL+"/upload", writer.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed: %s: %s", resp.Status, string(body))
	}

	var parsed struct {
		Data struct {
			WorkspaceId string `json:"workspace_id"`
			Text        string `json:"text"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	color.Green("Extracted %d chars", len(parsed.Data.Text))
	return parsed.Data.WorkspaceId, nil
}

func main() {
	if len(os.Args) < 2 {
		color.Red("Usage: test_workspace_api <path-to-pdf>")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting Workspace API Smoke Test\n")

	// 1. Upload
	color.Yellow("\n1. Upload PDF")
	workspaceId, err := uploadPdf(os.Args[1])
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Workspace: %s", workspaceId)

	// 2. Mind map
	color.Yellow("\n2. Generate Mind Map")
	resp, body, err := sendJSON("POST", "/ai/mindmap", map[string]interface{}{
		"workspace_id": workspaceId,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var mindmapResp map[string]interface{}
	json.Unmarshal(body, &mindmapResp)
	prettyPrint(mindmapResp)

	// 3. Deep dive
	color.Yellow("\n3. Deep Dive")
	resp, body, err = sendJSON("POST", "/ai/deepdive", map[string]interface{}{
		"workspace_id": workspaceId,
		"concept":      "the main contribution of this paper",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var deepdiveResp map[string]interface{}
	json.Unmarshal(body, &deepdiveResp)
	prettyPrint(deepdiveResp)

	// 4. Chat (SSE)
	color.Yellow("\n4. Chat Stream")
	chatBody, _ := json.Marshal(map[string]interface{}{
		"workspace_id": workspaceId,
		"messages": []map[string]string{
			{"role": "user", "content": "Summarize this document in one sentence."},
		},
	})
	chatResp, err := http.Post(baseURL+"/ai/chat", "application/json", bytes.NewBuffer(chatBody))
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer chatResp.Body.Close()

	scanner := bufio.NewScanner(chatResp.Body)
	var answer strings.Builder
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			break
		}
		var chunk struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal([]byte(payload), &chunk); err == nil {
			answer.WriteString(chunk.Text)
		}
	}
	color.Green("Answer: %s", answer.String())

	// 5. Export
	color.Yellow("\n5. Export Markdown")
	exportResp, err := http.Get(baseURL + "/workspace/" + workspaceId + "/export/markdown")
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer exportResp.Body.Close()
	md, _ := io.ReadAll(exportResp.Body)
	fmt.Println(string(md))

	color.Cyan("\n✅ Done")
}
