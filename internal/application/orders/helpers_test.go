package orders_test

import (
	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
)

func repositoryFilterAll() repository.OrderFilter { return repository.OrderFilter{} }

func dtoPage(limit, offset int) dto.PageRequest { return dto.PageRequest{Limit: limit, Offset: offset} }
