package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"escrutinio"
	"escrutinio/internal"
)

type candidatePayload struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

// totalEligible arrives as a string, matching form input; anything that is
// not a non-negative integer is stored as 0.
type stationPayload struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	TotalEligible string `json:"totalEligible"`
}

type resultPayload struct {
	Votes map[string]int `json:"votes"`
	Blank int            `json:"blancos"`
	Null  int            `json:"nulos"`
}

// NewRouter wires the repository and aggregator into an HTTP API.
func NewRouter(repo *escrutinio.Repository) *gin.Engine {
	r := gin.Default()

	r.GET("/candidates", func(c *gin.Context) {
		c.JSON(http.StatusOK, repo.Candidates())
	})

	r.POST("/candidates", func(c *gin.Context) {
		var payload candidatePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		candidate, err := repo.AddCandidate(payload.Name, payload.Party)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, candidate)
	})

	r.PUT("/candidates/:id", func(c *gin.Context) {
		var payload candidatePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if err := repo.EditCandidate(c.Param("id"), payload.Name, payload.Party); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.DELETE("/candidates/:id", func(c *gin.Context) {
		repo.DeleteCandidate(c.Param("id"))
		c.Status(http.StatusNoContent)
	})

	r.GET("/anforas", func(c *gin.Context) {
		c.JSON(http.StatusOK, repo.Stations())
	})

	r.POST("/anforas", func(c *gin.Context) {
		var payload stationPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		station, err := repo.AddStation(payload.Name, payload.Location, payload.TotalEligible)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, station)
	})

	r.PUT("/anforas/:id", func(c *gin.Context) {
		var payload stationPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if err := repo.EditStation(c.Param("id"), payload.Name, payload.Location, payload.TotalEligible); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.DELETE("/anforas/:id", func(c *gin.Context) {
		repo.DeleteStation(c.Param("id"))
		c.Status(http.StatusNoContent)
	})

	r.GET("/anforas/:id/result", func(c *gin.Context) {
		result, ok := repo.StationResult(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no result for anfora " + c.Param("id")})
			return
		}
		c.JSON(http.StatusOK, result)
	})

	r.PUT("/anforas/:id/result", func(c *gin.Context) {
		stationID := c.Param("id")
		station, ok := findStation(repo.Stations(), stationID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no anfora with id " + stationID})
			return
		}

		var payload resultPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		result := escrutinio.StationResult{
			Votes: payload.Votes,
			Blank: payload.Blank,
			Null:  payload.Null,
		}
		if !internal.AllNonNegative(append(countsOf(result.Votes), result.Blank, result.Null)) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "vote counts must be non-negative integers"})
			return
		}
		repo.SaveStationResult(stationID, result)

		// Exceeding the eligible-voter count is a soft warning, never a
		// rejection.
		response := gin.H{"saved": true}
		if total := result.Total(); total > station.TotalEligible {
			response["warning"] = "ballots cast exceed eligible voters for this anfora"
		}
		c.JSON(http.StatusOK, response)
	})

	r.DELETE("/anforas/:id/result", func(c *gin.Context) {
		repo.ClearStationResult(c.Param("id"))
		c.Status(http.StatusNoContent)
	})

	r.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, escrutinio.ComputeStats(repo.Snapshot()))
	})

	r.POST("/reset", func(c *gin.Context) {
		repo.Reset()
		c.Status(http.StatusNoContent)
	})

	return r
}

func fail(c *gin.Context, err error) {
	var notFound *escrutinio.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}

func findStation(stations []escrutinio.Station, id string) (escrutinio.Station, bool) {
	for _, station := range stations {
		if station.ID == id {
			return station, true
		}
	}
	return escrutinio.Station{}, false
}

func countsOf(votes map[string]int) []int {
	counts := make([]int, 0, len(votes))
	for _, count := range votes {
		counts = append(counts, count)
	}
	return counts
}
