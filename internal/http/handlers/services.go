package handlers

import (
	"net/http"

	"freightapi/internal/domain/models"
	"freightapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/services?route=&date=
func ListServices(c *gin.Context) {
	repo := repositories.ServiceRepo{}
	services, err := repo.List(c.Query("route"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GET /api/services/:id
func GetService(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.ServiceRepo{}
	svc, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// POST /api/services (admin)
func CreateService(c *gin.Context) {
	var req models.FreightService
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.ServiceRepo{}
	id, err := repo.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	svc, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// PUT /api/services/:id (admin)
func UpdateService(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req models.ServiceUpdate
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.ServiceRepo{}
	if err := repo.Update(id, req); err != nil {
		RespondDomainError(c, err)
		return
	}
	svc, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DELETE /api/services/:id (admin)
func DeleteService(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.ServiceRepo{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
