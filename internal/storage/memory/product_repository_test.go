package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

func newProduct(name string, qty int32) domain.Product {
	return domain.Product{
		Name:       name,
		PriceMinor: 1500,
		Quantity:   qty,
	}
}

func TestProductRepository_CreateGet(t *testing.T) {
	repo := memory.NewProductRepository()

	created, err := repo.Create(newProduct("keyboard", 5))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	stored, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Name != "keyboard" || stored.Quantity != 5 {
		t.Fatalf("unexpected product: %+v", stored)
	}
}

func TestProductRepository_CreateDuplicateName(t *testing.T) {
	repo := memory.NewProductRepository()
	if _, err := repo.Create(newProduct("keyboard", 5)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := repo.Create(newProduct("keyboard", 1))
	if !errors.Is(err, domain.ErrProductNameTaken) {
		t.Fatalf("expected ErrProductNameTaken, got %v", err)
	}
}

func TestProductRepository_GetNotFound(t *testing.T) {
	repo := memory.NewProductRepository()
	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_FindByIDs(t *testing.T) {
	repo := memory.NewProductRepository()
	first, err := repo.Create(newProduct("keyboard", 5))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := repo.Create(newProduct("mouse", 2))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Ненайденные и повторные идентификаторы пропускаются,
	// порядок результата следует порядку входа.
	found, err := repo.FindByIDs([]string{second.ID, "missing", first.ID, second.ID})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 products, got %d", len(found))
	}
	if found[0].ID != second.ID || found[1].ID != first.ID {
		t.Fatalf("unexpected order: %s, %s", found[0].ID, found[1].ID)
	}
}

func TestProductRepository_FindByIDsEmpty(t *testing.T) {
	repo := memory.NewProductRepository()
	found, err := repo.FindByIDs([]string{"missing-1", "missing-2"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("expected empty result, got %d", len(found))
	}
}

func TestProductRepository_UpdateQuantities(t *testing.T) {
	repo := memory.NewProductRepository()
	product, err := repo.Create(newProduct("keyboard", 5))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = repo.UpdateQuantities([]domain.StockUpdate{
		{ProductID: product.ID, Quantity: 3},
		{ProductID: "unknown", Quantity: 10}, // молча пропускается
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.Get(product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", stored.Quantity)
	}
}

func TestProductRepository_Upsert(t *testing.T) {
	repo := memory.NewProductRepository()
	product, err := repo.Create(newProduct("keyboard", 5))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	product.PriceMinor = 2000
	product.Quantity = 9
	updated, err := repo.Upsert(product)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if updated.PriceMinor != 2000 || updated.Quantity != 9 {
		t.Fatalf("unexpected product after upsert: %+v", updated)
	}
	if updated.CreatedAt != product.CreatedAt {
		t.Fatal("upsert must keep original CreatedAt")
	}

	fresh, err := repo.Upsert(domain.Product{ID: "ext-1", Name: "case", PriceMinor: 700, Quantity: 1})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if fresh.ID != "ext-1" {
		t.Fatalf("expected external id to be kept, got %s", fresh.ID)
	}
}
