package seeder

import (
	"testing"

	"github.com/gensql-labs/gensql/internal/schema"
)

func TestInsertionOrderRespectsForeignKeys(t *testing.T) {
	s, err := schema.Parse(`-- Dialect: PostgreSQL

CREATE TABLE order_items (
    id SERIAL PRIMARY KEY,
    order_id INT REFERENCES orders(id),
    product_id INT REFERENCES products(id)
);

CREATE TABLE orders (
    id SERIAL PRIMARY KEY,
    user_id INT REFERENCES users(id)
);

CREATE TABLE users (
    id SERIAL PRIMARY KEY
);

CREATE TABLE products (
    id SERIAL PRIMARY KEY
);`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	order, err := InsertionOrder(s)
	if err != nil {
		t.Fatalf("InsertionOrder failed: %v", err)
	}
	if len(order) != 4 {
		t.Fatalf("expected 4 tables, got %v", order)
	}

	pos := make(map[string]int)
	for i, name := range order {
		pos[name] = i
	}
	if pos["users"] > pos["orders"] {
		t.Errorf("users must come before orders: %v", order)
	}
	if pos["orders"] > pos["order_items"] {
		t.Errorf("orders must come before order_items: %v", order)
	}
	if pos["products"] > pos["order_items"] {
		t.Errorf("products must come before order_items: %v", order)
	}
}

func TestInsertionOrderIgnoresSelfReference(t *testing.T) {
	s, err := schema.Parse(`-- Dialect: PostgreSQL

CREATE TABLE employees (
    id SERIAL PRIMARY KEY,
    manager_id INT REFERENCES employees(id)
);`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	order, err := InsertionOrder(s)
	if err != nil {
		t.Fatalf("InsertionOrder failed: %v", err)
	}
	if len(order) != 1 || order[0] != "employees" {
		t.Errorf("order = %v, want [employees]", order)
	}
}

func TestInsertionOrderDetectsCycle(t *testing.T) {
	s, err := schema.Parse(`-- Dialect: PostgreSQL

CREATE TABLE a (
    id SERIAL PRIMARY KEY,
    b_id INT REFERENCES b(id)
);

CREATE TABLE b (
    id SERIAL PRIMARY KEY,
    a_id INT REFERENCES a(id)
);`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if _, err := InsertionOrder(s); err == nil {
		t.Error("expected cycle error")
	}
}

func TestInsertionOrderSkipsUnknownTables(t *testing.T) {
	s, err := schema.Parse(`-- Dialect: PostgreSQL

CREATE TABLE logs (
    id SERIAL PRIMARY KEY,
    tenant_id INT REFERENCES tenants(id)
);`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	order, err := InsertionOrder(s)
	if err != nil {
		t.Fatalf("InsertionOrder failed: %v", err)
	}
	if len(order) != 1 || order[0] != "logs" {
		t.Errorf("order = %v, want [logs]", order)
	}
}
