package http

import "github.com/gin-gonic/gin"

// RegisterBoardRoutes registra las rutas HTTP que usa la vista del tablero.
func RegisterBoardRoutes(r *gin.Engine, handler *BoardHandler) {
	// Proyección + filtro + aviso + loading en una sola lectura
	r.GET("/board", handler.GetBoard)
	r.PUT("/filter", handler.SetFilter)
	// Drag & drop sobre la secuencia mostrada
	r.POST("/reorder", handler.ReorderTask)

	tasks := r.Group("/tasks")
	{
		tasks.GET("", handler.ListTasks)              // Proyección del filtro activo
		tasks.POST("", handler.CreateTask)            // Crear una nueva tarea
		tasks.PUT("/:id", handler.UpdateTask)         // Editar una tarea existente
		tasks.DELETE("/:id", handler.DeleteTask)      // Eliminar una tarea
		tasks.POST("/:id/toggle", handler.ToggleTask) // pending <-> completed
	}
}
