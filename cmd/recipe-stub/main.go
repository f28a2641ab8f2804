// recipe-stub is a tiny OpenAI-compatible chat endpoint for exercising the
// extractor without a real model. It rejects every model except MODEL_ID
// with a 404 so the fallback list can be observed, and answers with a canned
// recipe in whichever schema the prompt asks for.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

const applianceAnswer = "```json\n" + `{
  "recipeName": "Stub Chili",
  "ingredients": ["1 lb ground beef", "1 can kidney beans", "2 tbsp chili powder"],
  "instructions": ["Step 1: Brown the beef.", "Step 2: Add beans and chili powder.", "Step 3: Simmer 45 minutes."],
  "applianceInstructions": [
    {"applianceName": "Instant Pot", "instructions": ["Step 1: Saute the beef.", "Step 2: Pressure cook 20 minutes."]}
  ]
}` + "\n```"

const taggedAnswer = "```json\n" + `{
  "title": "Stub Chili",
  "ingredients": ["1 lb ground beef", "1 can kidney beans", "2 tbsp chili powder"],
  "directions": ["Step 1: Brown the beef.", "Step 2: Add beans and chili powder.", "Step 3: Simmer 45 minutes."],
  "cooking_time": "45 minutes",
  "servings": "4",
  "tags": {"cuisine": ["American"], "main_ingredient": ["beef"], "cooking_method": ["simmering"], "meal_type": ["dinner"]}
}` + "\n```"

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "claude-3-haiku-20240307"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")

		if req.Model != model {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{
					"message": "model " + req.Model + " does not exist",
					"type":    "invalid_request_error",
					"code":    "model_not_found",
				},
			})
			return
		}

		prompt := ""
		if len(req.Messages) > 0 {
			prompt = req.Messages[len(req.Messages)-1].Content
		}
		answer := applianceAnswer
		if strings.Contains(prompt, `"directions"`) {
			answer = taggedAnswer
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "stub-1",
			"object": "chat.completion",
			"model":  model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": answer},
			}},
		})
	})

	log.Printf("recipe-stub listening on %s serving model %s", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
