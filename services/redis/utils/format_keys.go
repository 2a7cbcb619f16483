package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatLobbyKey(gameType string) string {
	return fmt.Sprintf("lobby:%s", gameType)
}

func FormatInboxKey(recipient string) string {
	return fmt.Sprintf("inbox:%s", recipient)
}

func FormatSessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func FormatSessionPlayerKey(sessionID string, username string) string {
	return fmt.Sprintf("session:%s:player:%s", sessionID, username)
}

func FormatRoundMoveKey(sessionID string, round int, username string) string {
	return fmt.Sprintf("session:%s:round:%d:%s", sessionID, round, username)
}

func FormatTauntsKey(sessionID string, target string) string {
	return fmt.Sprintf("session:%s:taunts:%s", sessionID, target)
}

func FormatProfileKey(username string) string {
	return fmt.Sprintf("profile:%s", username)
}

// RespectLeaderboardKey is the public respect ranking (a sorted set).
const RespectLeaderboardKey = "leaderboard:respect"
