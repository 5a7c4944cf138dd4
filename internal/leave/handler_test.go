package leave_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/technova/leave-management/internal"
	"github.com/technova/leave-management/internal/employee"
	"github.com/technova/leave-management/internal/leave"
)

var _ = Describe("Leave Handler Integration", func() {
	var (
		handler      *leave.Handler
		mockRepo     *mockLeaveRepository
		mockProfiles *mockProfileResolver
		router       *chi.Mux

		adminCaller    *internal.Caller
		employeeCaller *internal.Caller
	)

	doRequest := func(caller *internal.Caller, method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req = req.WithContext(internal.ContextWithCaller(req.Context(), caller))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		mockRepo = newMockLeaveRepository()
		mockProfiles = newMockProfileResolver()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := leave.NewService(mockRepo, mockProfiles, slogger)
		handler = leave.NewHandler(service)

		router = chi.NewRouter()
		router.Route("/leaves", func(r chi.Router) {
			r.Get("/", handler.ListLeaves)
			r.Post("/", handler.CreateLeave)
			r.Get("/{id}", handler.GetLeave)
			r.Put("/{id}", handler.UpdateLeave)
			r.Delete("/{id}", handler.CancelLeave)
			r.Patch("/{id}/approve", handler.ApproveLeave)
			r.Patch("/{id}/reject", handler.RejectLeave)
		})

		adminCaller = &internal.Caller{AccountID: "admin-account", Role: internal.RoleAdmin}
		employeeCaller = &internal.Caller{AccountID: "emp-account", Role: internal.RoleEmployee}
		mockProfiles.profiles["emp-account"] = &employee.Employee{EmployeeID: 10, AccountID: "emp-account"}
	})

	Describe("POST /leaves", func() {
		It("should create a pending request and return 201", func() {
			start := time.Now().AddDate(0, 0, 7)
			w := doRequest(employeeCaller, http.MethodPost, "/leaves/", leave.CreateLeaveDTO{
				StartDate: start,
				EndDate:   start.AddDate(0, 0, 2),
				Reason:    "Attending a family event out of town",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created leave.LeaveRequest
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.Status).To(Equal(leave.StatusPending))
			Expect(created.EmployeeID).To(Equal(int64(10)))
		})

		It("should return 400 for an invalid payload", func() {
			w := doRequest(employeeCaller, http.MethodPost, "/leaves/", leave.CreateLeaveDTO{
				Reason: "short",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 404 when the caller has no profile", func() {
			orphan := &internal.Caller{AccountID: "no-profile", Role: internal.RoleEmployee}
			start := time.Now().AddDate(0, 0, 7)

			w := doRequest(orphan, http.MethodPost, "/leaves/", leave.CreateLeaveDTO{
				StartDate: start,
				EndDate:   start.AddDate(0, 0, 2),
				Reason:    "Attending a family event out of town",
			})

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("request lifecycle over HTTP", func() {
		var createdID int64

		BeforeEach(func() {
			start := time.Now().AddDate(0, 0, 7)
			w := doRequest(employeeCaller, http.MethodPost, "/leaves/", leave.CreateLeaveDTO{
				StartDate: start,
				EndDate:   start.AddDate(0, 0, 2),
				Reason:    "Attending a family event out of town",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))

			var created leave.LeaveRequest
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			createdID = created.LeaveID
		})

		It("should list the caller's own requests", func() {
			w := doRequest(employeeCaller, http.MethodGet, "/leaves/", nil)

			Expect(w.Code).To(Equal(http.StatusOK))

			var result leave.ListResult
			Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
			Expect(result.Leaves).To(HaveLen(1))
		})

		It("should approve via PATCH and report the new status", func() {
			w := doRequest(adminCaller, http.MethodPatch, fmt.Sprintf("/leaves/%d/approve", createdID), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"status":"approved"`))
			Expect(mockRepo.leaves[createdID].Status).To(Equal(leave.StatusApproved))
		})

		It("should return 403 when a non-administrator tries to approve", func() {
			w := doRequest(employeeCaller, http.MethodPatch, fmt.Sprintf("/leaves/%d/approve", createdID), nil)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(mockRepo.leaves[createdID].Status).To(Equal(leave.StatusPending))
		})

		It("should cancel via DELETE and return 204", func() {
			w := doRequest(employeeCaller, http.MethodDelete, fmt.Sprintf("/leaves/%d", createdID), nil)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(mockRepo.leaves).ToNot(HaveKey(createdID))
		})

		It("should return 400 for a non-numeric id", func() {
			w := doRequest(adminCaller, http.MethodGet, "/leaves/abc", nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 401 when no caller is attached", func() {
			req := httptest.NewRequest(http.MethodGet, "/leaves/", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
