package handlers

import (
	"net/http"

	"school-meals-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo returns the delivery lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"Delivered"},
		"description":     "School Meal Delivery Lifecycle State Machine",
	})
}
