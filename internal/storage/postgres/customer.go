package postgres

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/model"
)

type customerRepository struct {
	db querier
}

type phoneRepository struct {
	db querier
}

type addressRepository struct {
	db querier
}

const customerColumns = `idCliente, nomeCliente, sobrenomeCliente, cpfCliente, emailCliente`

func scanCustomer(row scanner, c *model.Customer) error {
	return row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.CPF, &c.Email)
}

func (r *customerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	const query = `INSERT INTO clientes (nomeCliente, sobrenomeCliente, cpfCliente, emailCliente)
                   VALUES ($1, $2, $3, $4) RETURNING idCliente`
	created := *c
	if err := r.db.QueryRow(ctx, query, c.FirstName, c.LastName, c.CPF, c.Email).Scan(&created.ID); err != nil {
		return nil, mapError(err, "customer with cpf "+c.CPF)
	}
	return &created, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE idCliente=$1`
	var c model.Customer
	if err := scanCustomer(r.db.QueryRow(ctx, query, id), &c); err != nil {
		return nil, mapError(err, fmt.Sprintf("customer %d", id))
	}
	return &c, nil
}

func (r *customerRepository) GetByCPF(ctx context.Context, cpf string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE cpfCliente=$1`
	var c model.Customer
	if err := scanCustomer(r.db.QueryRow(ctx, query, cpf), &c); err != nil {
		return nil, mapError(err, "customer with cpf "+cpf)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes ORDER BY idCliente`
	rows, err := r.db.Query(ctx, query)
	return collect(rows, err, "customers", scanCustomer)
}

func (r *customerRepository) Update(ctx context.Context, c *model.Customer) error {
	const query = `UPDATE clientes SET nomeCliente=$1, sobrenomeCliente=$2, cpfCliente=$3, emailCliente=$4
                   WHERE idCliente=$5`
	subject := fmt.Sprintf("customer %d", c.ID)
	tag, err := r.db.Exec(ctx, query, c.FirstName, c.LastName, c.CPF, c.Email, c.ID)
	if err != nil {
		return mapError(err, subject)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.NotFoundf("%s not found", subject)
	}
	return nil
}

// Delete runs child deletes first so foreign keys hold at every step. Callers
// wrap it in a transaction to make the cascade all-or-nothing.
func (r *customerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	subject := fmt.Sprintf("customer %d", id)
	children := []string{
		`DELETE FROM entregas WHERE idPedidoFK IN (SELECT idPedido FROM pedidos WHERE idCliente=$1)`,
		`DELETE FROM pedidos WHERE idCliente=$1`,
		`DELETE FROM telefones WHERE idClienteFK=$1`,
		`DELETE FROM enderecos WHERE idClienteFK=$1`,
	}
	for _, stmt := range children {
		if _, err := r.db.Exec(ctx, stmt, id); err != nil {
			return 0, mapError(err, subject)
		}
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM clientes WHERE idCliente=$1`, id)
	if err != nil {
		return 0, mapError(err, subject)
	}
	return tag.RowsAffected(), nil
}

const phoneColumns = `idTelefone, idClienteFK, numero, tipoTelefone`

func scanPhone(row scanner, p *model.Phone) error {
	return row.Scan(&p.ID, &p.CustomerID, &p.Number, &p.Type)
}

func (r *phoneRepository) Create(ctx context.Context, p *model.Phone) (*model.Phone, error) {
	const query = `INSERT INTO telefones (idClienteFK, numero, tipoTelefone) VALUES ($1, $2, $3) RETURNING idTelefone`
	created := *p
	if err := r.db.QueryRow(ctx, query, p.CustomerID, p.Number, p.Type).Scan(&created.ID); err != nil {
		return nil, mapError(err, fmt.Sprintf("phone of customer %d", p.CustomerID))
	}
	return &created, nil
}

func (r *phoneRepository) GetByID(ctx context.Context, id int64) (*model.Phone, error) {
	query := `SELECT ` + phoneColumns + ` FROM telefones WHERE idTelefone=$1`
	var p model.Phone
	if err := scanPhone(r.db.QueryRow(ctx, query, id), &p); err != nil {
		return nil, mapError(err, fmt.Sprintf("phone %d", id))
	}
	return &p, nil
}

func (r *phoneRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Phone, error) {
	query := `SELECT ` + phoneColumns + ` FROM telefones WHERE idClienteFK=$1 ORDER BY idTelefone`
	rows, err := r.db.Query(ctx, query, customerID)
	return collect(rows, err, fmt.Sprintf("phones of customer %d", customerID), scanPhone)
}

func (r *phoneRepository) Update(ctx context.Context, p *model.Phone) error {
	const query = `UPDATE telefones SET numero=$1, tipoTelefone=$2 WHERE idTelefone=$3`
	subject := fmt.Sprintf("phone %d", p.ID)
	tag, err := r.db.Exec(ctx, query, p.Number, p.Type, p.ID)
	if err != nil {
		return mapError(err, subject)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.NotFoundf("%s not found", subject)
	}
	return nil
}

func (r *phoneRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM telefones WHERE idTelefone=$1`, id)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("phone %d", id))
	}
	return tag.RowsAffected(), nil
}

const addressColumns = `idEndereco, idClienteFK, logradouro, numero, bairro, cidade, estado, cep, complemento`

func scanAddress(row scanner, a *model.Address) error {
	return row.Scan(&a.ID, &a.CustomerID, &a.Street, &a.Number, &a.District, &a.City, &a.State, &a.PostalCode, &a.Complement)
}

func (r *addressRepository) Create(ctx context.Context, a *model.Address) (*model.Address, error) {
	const query = `INSERT INTO enderecos (idClienteFK, logradouro, numero, bairro, cidade, estado, cep, complemento)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING idEndereco`
	created := *a
	err := r.db.QueryRow(ctx, query, a.CustomerID, a.Street, a.Number, a.District, a.City, a.State, a.PostalCode, a.Complement).
		Scan(&created.ID)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("address of customer %d", a.CustomerID))
	}
	return &created, nil
}

func (r *addressRepository) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM enderecos WHERE idEndereco=$1`
	var a model.Address
	if err := scanAddress(r.db.QueryRow(ctx, query, id), &a); err != nil {
		return nil, mapError(err, fmt.Sprintf("address %d", id))
	}
	return &a, nil
}

func (r *addressRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM enderecos WHERE idClienteFK=$1 ORDER BY idEndereco`
	rows, err := r.db.Query(ctx, query, customerID)
	return collect(rows, err, fmt.Sprintf("addresses of customer %d", customerID), scanAddress)
}

func (r *addressRepository) Update(ctx context.Context, a *model.Address) error {
	const query = `UPDATE enderecos SET logradouro=$1, numero=$2, bairro=$3, cidade=$4, estado=$5, cep=$6, complemento=$7
                   WHERE idEndereco=$8`
	subject := fmt.Sprintf("address %d", a.ID)
	tag, err := r.db.Exec(ctx, query, a.Street, a.Number, a.District, a.City, a.State, a.PostalCode, a.Complement, a.ID)
	if err != nil {
		return mapError(err, subject)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.NotFoundf("%s not found", subject)
	}
	return nil
}

func (r *addressRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM enderecos WHERE idEndereco=$1`, id)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("address %d", id))
	}
	return tag.RowsAffected(), nil
}
