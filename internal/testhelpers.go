package internal

import (
	"time"
)

// CreateTestDetail creates a test session transcript with sample data
func CreateTestDetail(sessionID int) *ChatSessionDetail {
	now := time.Now().UTC().Format(time.RFC3339)
	return &ChatSessionDetail{
		SessionID: sessionID,
		Username:  "budi",
		Messages: []ChatTurn{
			{
				Role:      "user",
				Text:      "Apa sanksi menerobos lampu merah?",
				CreatedAt: now,
			},
			{
				Role:      "assistant",
				Text:      "Menerobos lampu merah dapat dikenai sanksi sesuai Pasal 287.",
				CreatedAt: now,
			},
		},
	}
}

// CreateTestDetailWithMessages creates a test transcript with custom messages
func CreateTestDetailWithMessages(sessionID int, messages []ChatTurn) *ChatSessionDetail {
	return &ChatSessionDetail{
		SessionID: sessionID,
		Username:  "budi",
		Messages:  messages,
	}
}

// CreateTestSummary creates a test history row
func CreateTestSummary(sessionID int, title string) ChatSessionSummary {
	preview := "Menerobos lampu merah dapat dikenai sanksi..."
	return ChatSessionSummary{
		SessionID:   sessionID,
		Title:       title,
		LastPreview: &preview,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// CreateTestSourceDoc creates a test source document
func CreateTestSourceDoc(id string, score float64) SourceDoc {
	return SourceDoc{
		ID:    id,
		Title: "UU 22/2009 Pasal 287",
		Body:  "Setiap orang yang mengemudikan kendaraan bermotor di jalan...",
		Score: score,
	}
}
