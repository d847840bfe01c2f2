package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"school-meals-api/config"
	"school-meals-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchoolRefusesDuplicateName(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	token := tokenFor(t, admin)

	w := doJSON(t, r, http.MethodPost, "/api/admin/schools", token, map[string]string{
		"name": "Oakridge Primary",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// case-insensitive duplicate check
	w = doJSON(t, r, http.MethodPost, "/api/admin/schools", token, map[string]string{
		"name": "oakridge primary",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	config.DB.Model(&models.School{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteSchoolRefusedWhileReferenced(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	guy := createUser(t, "Driver", "d@x.com", "secret123", models.RoleDelivery)
	school := createSchool(t, "Oakridge Primary")
	createDelivery(t, school, guy, "2025-03-10")

	w := doJSON(t, r, http.MethodDelete, "/api/admin/schools/1", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// school and its references remain unchanged
	var schools, deliveries int64
	config.DB.Model(&models.School{}).Count(&schools)
	config.DB.Model(&models.Delivery{}).Count(&deliveries)
	assert.EqualValues(t, 1, schools)
	assert.EqualValues(t, 1, deliveries)
}

func TestDeleteSchoolSucceedsWithoutReferences(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	createSchool(t, "Oakridge Primary")

	w := doJSON(t, r, http.MethodDelete, "/api/admin/schools/1", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	config.DB.Model(&models.School{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestWorkerListingExcludesAdmins(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	createUser(t, "Cook", "cook@x.com", "secret123", models.RoleCooker)
	createUser(t, "Driver", "d@x.com", "secret123", models.RoleDelivery)

	w := doJSON(t, r, http.MethodGet, "/api/admin/workers", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	workers := decodeBody(t, w)["workers"].([]interface{})
	require.Len(t, workers, 2)
	for _, raw := range workers {
		assert.NotEqual(t, "admin", raw.(map[string]interface{})["role"])
	}
}

func TestAdminNotReachableThroughWorkerHandlers(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	token := tokenFor(t, admin)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/workers/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/admin/workers/1", token, map[string]interface{}{
		"name": "X", "email": "x@x.com", "role": "cooker",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteWorkerRefusedWhileReferenced(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	guy := createUser(t, "Driver", "d@x.com", "secret123", models.RoleDelivery)
	school := createSchool(t, "Oakridge Primary")
	createDelivery(t, school, guy, "2025-03-10")

	w := doJSON(t, r, http.MethodDelete, "/api/admin/workers/2", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	config.DB.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestCreateWorkerRejectsAdminRole(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/admin/workers", tokenFor(t, admin), map[string]interface{}{
		"name": "Sneaky", "email": "s@x.com", "password": "secret123", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminMarkDelivered(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	guy := createUser(t, "Driver", "d@x.com", "secret123", models.RoleDelivery)
	school := createSchool(t, "Oakridge Primary")
	delivery := createDelivery(t, school, guy, "2025-03-10")

	w := doJSON(t, r, http.MethodPut, "/api/admin/deliveries/1/deliver", tokenFor(t, admin),
		map[string]string{"remarks": "confirmed by phone"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Delivery
	require.NoError(t, config.DB.First(&got, delivery.ID).Error)
	assert.Equal(t, models.StatusDelivered, got.Status)
	require.NotNil(t, got.DeliveredTime)
	assert.WithinDuration(t, time.Now().UTC(), *got.DeliveredTime, 5*time.Second)
	assert.Equal(t, "confirmed by phone", got.Remarks)

	// terminal: admin cannot re-mark either
	w = doJSON(t, r, http.MethodPut, "/api/admin/deliveries/1/deliver", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateDeliveredDeliveryRefused(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	guy := createUser(t, "Driver", "d@x.com", "secret123", models.RoleDelivery)
	school := createSchool(t, "Oakridge Primary")
	delivery := createDelivery(t, school, guy, "2025-03-10")
	now := time.Now().UTC()
	config.DB.Model(&delivery).Updates(map[string]interface{}{
		"status": models.StatusDelivered, "delivered_time": now,
	})

	w := doJSON(t, r, http.MethodPut, "/api/admin/deliveries/1", tokenFor(t, admin), map[string]interface{}{
		"school_id": school.ID, "delivery_guy_id": guy.ID, "delivery_date": "2025-03-11",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateDeliveryRejectsNonCookerCookerID(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	guy := createUser(t, "Driver", "d@x.com", "secret123", models.RoleDelivery)
	school := createSchool(t, "Oakridge Primary")
	delivery := createDelivery(t, school, guy, "2025-03-10")

	// same body CreateDelivery rejects: a delivery person as the cooker
	w := doJSON(t, r, http.MethodPut, "/api/admin/deliveries/1", tokenFor(t, admin), map[string]interface{}{
		"school_id": school.ID, "delivery_guy_id": guy.ID,
		"delivery_date": "2025-03-10", "cooker_id": guy.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got models.Delivery
	require.NoError(t, config.DB.First(&got, delivery.ID).Error)
	assert.Nil(t, got.CookerID)
}

func TestSingleDeliveryReportIncludesGroceryTable(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	cooker := createUser(t, "Cook", "cook@x.com", "secret123", models.RoleCooker)
	guy := createUser(t, "Driver", "d@x.com", "secret123", models.RoleDelivery)
	school := createSchool(t, "Oakridge Primary")
	delivery := createDelivery(t, school, guy, "2025-03-10")
	require.NoError(t, config.DB.Model(&delivery).Update("cooker_id", cooker.ID).Error)
	createGroceryItem(t, cooker, "Rice")

	w := doJSON(t, r, http.MethodGet, "/api/admin/deliveries/1/report", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "pdf", body["format"])
	assert.NotEmpty(t, body["file_token"])
	assert.Len(t, body["grocery_items"].([]interface{}), 1)
	got := body["delivery"].(map[string]interface{})
	assert.EqualValues(t, delivery.ID, got["id"])
}

func TestDeliveryReportFiltersAdditively(t *testing.T) {
	r := setupServer(t)
	admin := createUser(t, "Admin", "admin@x.com", "secret123", models.RoleAdmin)
	guy := createUser(t, "Driver", "d@x.com", "secret123", models.RoleDelivery)
	oak := createSchool(t, "Oakridge Primary")
	elm := createSchool(t, "Elmwood Primary")

	createDelivery(t, oak, guy, "2025-03-10")
	d2 := createDelivery(t, oak, guy, "2025-03-11")
	createDelivery(t, elm, guy, "2025-03-11")
	config.DB.Model(&d2).Update("status", models.StatusDelivered)

	w := doJSON(t, r, http.MethodGet,
		"/api/admin/reports?school_id=1&status=Delivered", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, 1.0, body["count"])

	// export carries the same rows plus a download descriptor
	w = doJSON(t, r, http.MethodGet,
		"/api/admin/reports/export?school_id=1&status=Delivered", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	export := decodeBody(t, w)
	assert.Equal(t, 1.0, export["row_count"])
	assert.NotEmpty(t, export["file_token"])
}
