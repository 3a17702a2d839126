package handlers

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route the service exposes.
// Keeping route registration here lets tests exercise the exact wiring
// the server runs.
func NewRouter(user *UserHandler, habit *HabitHandler, reminder *ReminderHandler, avatar *AvatarHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/user/:uid", user.GetUser)
	r.POST("/user/:uid", user.RegisterUser)
	r.PUT("/user/:uid", user.UpdateUser)

	r.GET("/habits/:uid", habit.ListHabits)
	r.GET("/habits/one/:id", habit.GetHabit)
	r.POST("/habits/:uid", habit.CreateHabit)
	r.PUT("/habits/:id", habit.UpdateHabit)
	r.DELETE("/habits/:id", habit.DeleteHabit)

	r.POST("/reminder", reminder.CreateReminder)
	r.GET("/reminder/:habitId", reminder.ListReminders)
	r.DELETE("/reminder/:id", reminder.DeleteReminder)

	if avatar != nil {
		r.POST("/user/:uid/avatar", avatar.UploadAvatar)
		r.GET("/avatar/:fileId", avatar.GetAvatar)
	}

	return r
}
