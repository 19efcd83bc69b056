package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"shop-bench/internal/money"
	"shop-bench/internal/monitor"
	"shop-bench/internal/seller"
)

type sellerView struct {
	Name   string  `json:"name"`
	Cash   float64 `json:"cash"`
	Online bool    `json:"online"`
}

// runMonitorServer 提供卖家注册与事件查询接口，阻塞直到 ctx 取消。
func runMonitorServer(ctx context.Context, svc *monitor.Service, directory *seller.Directory, port int, logger *zap.Logger) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit := 200
		if qs := q.Get("limit"); qs != "" {
			if v, err := strconv.Atoi(qs); err == nil && v > 0 {
				if v > 1000 {
					v = 1000
				}
				limit = v
			}
		}

		eventType := monitor.EventType("")
		if typ := strings.TrimSpace(q.Get("type")); typ != "" {
			eventType = monitor.EventType(strings.ToLower(typ))
		}

		events, err := svc.ListEvents(r.Context(), eventType, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(events); err != nil {
			logger.Warn("写入监控响应失败", zap.Error(err))
		}
	})

	mux.HandleFunc("/sellers", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handleRegister(w, r, svc, directory, logger)
		case http.MethodGet:
			handleLeaderboard(w, directory, logger)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("关闭监控服务失败", zap.Error(err))
		}
	}()

	logger.Info("监控接口已启动", zap.String("addr", addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("监控服务异常: %w", err)
	}
	return nil
}

func handleRegister(w http.ResponseWriter, r *http.Request, svc *monitor.Service, directory *seller.Directory, logger *zap.Logger) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "解析表单失败", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	rawURL := r.FormValue("url")

	s, err := seller.New(name, rawURL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	directory.Add(s)
	svc.RecordRegistration(r.Context(), monitor.RegistrationPayload{
		Seller:   s.Name,
		Hostname: s.Hostname,
		Port:     s.Port,
		Path:     s.Path,
	})
	logger.Info("卖家已注册",
		zap.String("name", s.Name),
		zap.String("hostname", s.Hostname),
		zap.Int("port", s.Port),
	)

	w.WriteHeader(http.StatusNoContent)
}

func handleLeaderboard(w http.ResponseWriter, directory *seller.Directory, logger *zap.Logger) {
	sellers := directory.All()

	views := make([]sellerView, 0, len(sellers))
	for _, s := range sellers {
		views = append(views, sellerView{
			Name:   s.Name,
			Cash:   money.Round2(s.Cash),
			Online: s.Online,
		})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Cash != views[j].Cash {
			return views[i].Cash > views[j].Cash
		}
		return views[i].Name < views[j].Name
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		logger.Warn("写入排行榜响应失败", zap.Error(err))
	}
}
