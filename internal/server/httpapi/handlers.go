package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/insight"
	"github.com/dmitrijs2005/climatetracker/internal/server/chart"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type usageQuery struct {
	ElectricityKWh float64 `form:"electricity_kwh"`
	PetrolLiters   float64 `form:"petrol_liters"`
	FoodExpense    float64 `form:"food_expense"`
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest(err))
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": user.UserName})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest(err))
		return
	}

	pair, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (s *Server) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest(err))
		return
	}

	pair, err := s.users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (s *Server) preview(c *gin.Context) {
	var u insight.Usage
	if err := c.ShouldBindJSON(&u); err != nil {
		s.writeError(c, badRequest(err))
		return
	}

	a, err := s.tracker.Preview(u)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) calculate(c *gin.Context) {
	var u insight.Usage
	if err := c.ShouldBindJSON(&u); err != nil {
		s.writeError(c, badRequest(err))
		return
	}

	report, err := s.tracker.Calculate(c.Request.Context(), session(c), u)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (s *Server) history(c *gin.Context) {
	history, err := s.tracker.History(c.Request.Context(), session(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (s *Server) leaderboard(c *gin.Context) {
	ranking, err := s.tracker.Ranking(c.Request.Context(), session(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ranking": ranking})
}

func (s *Server) prediction(c *gin.Context) {
	p, err := s.tracker.Predict(c.Request.Context(), session(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) chartHandler(format chart.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q usageQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			s.writeError(c, badRequest(err))
			return
		}

		a, err := s.tracker.Preview(insight.Usage{
			ElectricityKWh: q.ElectricityKWh,
			PetrolLiters:   q.PetrolLiters,
			FoodExpense:    q.FoodExpense,
		})
		if err != nil {
			s.writeError(c, err)
			return
		}

		var buf bytes.Buffer
		if err := chart.RenderPie(&buf, a.Proportions, format); err != nil {
			s.writeError(c, err)
			return
		}
		c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
	}
}

func (s *Server) export(c *gin.Context) {
	res, err := s.exports.ExportHistory(c.Request.Context(), session(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
