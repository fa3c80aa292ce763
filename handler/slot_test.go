package handler

import (
	"bytes"
	"dessert_shop/model"
	"dessert_shop/validate"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newSlotTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/slot", GetSlots)
	app.Post("/slot", validate.CreateSlot(), CreateSlot)
	app.Put("/slot/:slotId", validate.UpdateSlot("slotId"), EditSlot)
	app.Patch("/slot/:slotId/deactivate", validate.GetById("slotId"), DeactivateSlot)
	return app
}

func slotRequest(t *testing.T, app *fiber.App, method, path string, body map[string]interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, parsed
}

func slotBody(name, oS, oE, dS, dE string) map[string]interface{} {
	return map[string]interface{}{
		"name":          name,
		"month":         "03-2025",
		"orderStart":    oS,
		"orderEnd":      oE,
		"dispatchStart": dS,
		"dispatchEnd":   dE,
	}
}

func TestSlotEndpoints(t *testing.T) {
	db := setupTestDB(t)
	app := newSlotTestApp()

	var slotAId uint

	t.Run("tạo đợt hợp lệ", func(t *testing.T) {
		resp, parsed := slotRequest(t, app, http.MethodPost, "/slot",
			slotBody("Đợt tháng Ba", "2025-03-01", "2025-03-05", "2025-03-08", "2025-03-10"))
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("status = %d: %v", resp.StatusCode, parsed)
		}
		data := parsed["data"].(map[string]interface{})
		slotAId = uint(data["id"].(float64))
		if data["active"] != true {
			t.Error("đợt mới phải active")
		}
	})

	t.Run("đợt chồng lấn bị 409 kèm chi tiết", func(t *testing.T) {
		resp, parsed := slotRequest(t, app, http.MethodPost, "/slot",
			slotBody("Đợt đè lên", "2025-03-04", "2025-03-06", "2025-03-12", "2025-03-14"))
		if resp.StatusCode != fiber.StatusConflict {
			t.Fatalf("status = %d: %v", resp.StatusCode, parsed)
		}
		if parsed["conflictSlot"] != "Đợt tháng Ba" {
			t.Errorf("conflictSlot = %v", parsed["conflictSlot"])
		}
		if parsed["dimension"] != "order-vs-order" {
			t.Errorf("dimension = %v", parsed["dimension"])
		}
	})

	t.Run("khoảng ngược bị 400", func(t *testing.T) {
		resp, _ := slotRequest(t, app, http.MethodPost, "/slot",
			slotBody("Đợt hỏng", "2025-03-20", "2025-03-15", "2025-03-25", "2025-03-28"))
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("status = %d, mong 400", resp.StatusCode)
		}
	})

	t.Run("sửa đợt không tự xung đột với chính nó", func(t *testing.T) {
		resp, parsed := slotRequest(t, app, http.MethodPut, fmt.Sprintf("/slot/%d", slotAId),
			map[string]interface{}{"orderEnd": "2025-03-06"})
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d: %v", resp.StatusCode, parsed)
		}
		data := parsed["data"].(map[string]interface{})
		if data["orderEnd"] != "2025-03-06" {
			t.Errorf("orderEnd = %v", data["orderEnd"])
		}
	})

	t.Run("tắt đợt rồi thì tháng đó tạo đợt trùng được", func(t *testing.T) {
		resp, _ := slotRequest(t, app, http.MethodPatch, fmt.Sprintf("/slot/%d/deactivate", slotAId), nil)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("deactivate status = %d", resp.StatusCode)
		}

		var slot model.PostalOrderSlot
		if err := db.First(&slot, slotAId).Error; err != nil {
			t.Fatal(err)
		}
		if slot.Active {
			t.Error("đợt phải bị tắt")
		}

		// đợt tắt không còn tham gia kiểm chồng lấn
		resp, parsed := slotRequest(t, app, http.MethodPost, "/slot",
			slotBody("Đợt thay thế", "2025-03-01", "2025-03-05", "2025-03-08", "2025-03-10"))
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("status = %d: %v", resp.StatusCode, parsed)
		}
	})

	t.Run("lọc danh sách theo tháng", func(t *testing.T) {
		resp, parsed := slotRequest(t, app, http.MethodGet, "/slot?month=03-2025&active=true", nil)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		data := parsed["data"].(map[string]interface{})
		if data["totalCount"].(float64) != 1 {
			t.Errorf("totalCount = %v, mong 1 (chỉ đợt còn active)", data["totalCount"])
		}
	})

	t.Run("tháng sai định dạng", func(t *testing.T) {
		body := slotBody("Đợt sai tháng", "2025-03-01", "2025-03-05", "2025-03-08", "2025-03-10")
		body["month"] = "2025-03"
		resp, _ := slotRequest(t, app, http.MethodPost, "/slot", body)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("status = %d, mong 400", resp.StatusCode)
		}
	})
}
