package ingest

// Ranked field-name candidates per logical field. The upstream schema is not
// consistent across tables and over time, so every field is resolved through
// one of these chains and nowhere else.
var (
	plateField = Chain{Key("Placa"), Key("PlacaVeiculo"), Key("placa"), Key("plate"), Nested("Veiculo", "Placa")}
	modelField = Chain{Key("Modelo"), Key("ModeloVeiculo"), Key("DescricaoModelo"), Key("modelo"), Nested("Veiculo", "Modelo")}
)

var vehicleFields = struct {
	status, acquiredAt, disposedAt, purchaseValue, marketValue Chain
}{
	status:        Keys("Status", "SituacaoVeiculo", "Situacao"),
	acquiredAt:    Keys("DataCompra", "DataAquisicao", "DataEntradaFrota", "DataInicioOperacao"),
	disposedAt:    Keys("DataVenda", "DataBaixa", "DataDesmobilizacao", "DataSaidaFrota"),
	purchaseValue: Keys("ValorCompra", "ValorAquisicao", "ValorNotaFiscal"),
	marketValue:   Keys("ValorFipe", "ValorFipeAtual", "ValorMercado"),
}

var maintenanceFields = struct {
	id, occurrenceID                        Chain
	entryAt, exitAt                         Chain
	openedAt, closedAt, arrivalAt, pickupAt Chain
	allDates                                Chain
	cost, reimbursable, nonReimbursable     Chain
	status, kind, supplier, movements       Chain
}{
	id:           Keys("IdOrdemServico", "OrdemServico", "NumeroOS", "IdOS", "Id", "id"),
	occurrenceID: Keys("IdOcorrencia", "Ocorrencia", "NumeroOcorrencia", "CodigoOcorrencia"),
	entryAt:      Keys("DataEntrada", "DataChegadaVeiculo", "DataAgendamento", "DataAberturaOcorrencia", "DataAbertura", "DataCriacao"),
	exitAt:       Keys("DataSaida", "DataRetiradaVeiculo", "DataConclusao", "DataFechamento", "DataEncerramento"),
	openedAt:     Keys("DataAberturaOcorrencia", "DataAbertura", "DataCriacao"),
	closedAt:     Keys("DataFechamentoOcorrencia", "DataFechamento", "DataConclusao", "DataEncerramento"),
	arrivalAt:    Keys("DataChegadaVeiculo", "DataEntrada", "DataAgendamento"),
	pickupAt:     Keys("DataRetiradaVeiculo", "DataSaida"),
	allDates: Keys(
		"DataAberturaOcorrencia", "DataAbertura", "DataCriacao", "DataAgendamento",
		"DataChegadaVeiculo", "DataEntrada", "DataSaida", "DataRetiradaVeiculo",
		"DataConclusao", "DataFechamento", "DataFechamentoOcorrencia", "DataEncerramento",
	),
	cost:            Keys("ValorTotal", "CustoTotal", "ValorTotalOS", "Valor"),
	reimbursable:    Keys("ValorReembolsavel", "CustoReembolsavel"),
	nonReimbursable: Keys("ValorNaoReembolsavel", "CustoNaoReembolsavel"),
	status:          Keys("StatusOS", "Status", "SituacaoOS"),
	kind:            Keys("TipoManutencao", "TipoOcorrencia", "Tipo"),
	supplier:        Keys("Fornecedor", "Oficina", "NomeFornecedor"),
	movements:       Keys("Movimentacoes", "Movimentos", "HistoricoMovimentacao", "Etapas"),
}

var movementFields = struct {
	stage, at, elapsed Chain
}{
	stage:   Keys("Etapa", "EtapaAtual", "Descricao", "Status", "Nome"),
	at:      Keys("DataConfirmacao", "DataMovimentacao", "Data", "DataHora"),
	elapsed: Keys("TempoDecorridoMinutos", "TempoDecorrido", "TempoEtapaMinutos", "Minutos"),
}

var contractFields = struct {
	id, client, startAt, scheduledEndAt, actualEndAt, monthlyValue, tenor Chain
}{
	id:             Keys("IdContrato", "NumeroContrato", "ContratoLocacao", "Id", "id"),
	client:         Keys("NomeCliente", "Cliente", "RazaoSocial", "NomeFantasia"),
	startAt:        Keys("DataInicio", "DataInicioContrato", "InicioLocacao", "DataRetirada"),
	scheduledEndAt: Keys("DataFimPrevista", "DataTerminoPrevista", "DataFimContrato", "DataTermino", "FimPrevisto"),
	actualEndAt:    Keys("DataEncerramento", "DataDevolucao", "DataFimReal", "DataTerminoReal"),
	monthlyValue:   Keys("ValorMensal", "ValorLocacao", "ValorMensalidade"),
	tenor:          Keys("PrazoMeses", "Prazo", "PeriodoContratado"),
}

var accidentFields = struct {
	id, description, openedAt, closedAt, amount Chain
}{
	id:          Keys("IdSinistro", "NumeroSinistro", "Id", "id"),
	description: Keys("Descricao", "DescricaoSinistro", "TipoSinistro"),
	openedAt:    Keys("DataSinistro", "DataOcorrencia", "DataAbertura", "DataCriacao"),
	closedAt:    Keys("DataConclusao", "DataFechamento", "DataEncerramento"),
	amount:      Keys("ValorOrcamento", "ValorPrejuizo", "ValorTotal", "Valor"),
}

var fineFields = struct {
	id, description, infractionAt, amount Chain
}{
	id:           Keys("IdMulta", "AutoInfracao", "NumeroAutoInfracao", "Id", "id"),
	description:  Keys("DescricaoInfracao", "Infracao", "Descricao"),
	infractionAt: Keys("DataInfracao", "DataHoraInfracao", "DataMulta", "Data"),
	amount:       Keys("ValorMulta", "ValorInfracao", "Valor"),
}

var eventFields = struct {
	kind, at, description, detail Chain
}{
	kind:        Keys("TipoEvento", "Tipo", "Evento", "tipo"),
	at:          Keys("DataEvento", "Data", "DataHora", "data"),
	description: Keys("Descricao", "Detalhe1", "Titulo", "descricao"),
	detail:      Keys("Detalhe", "Detalhes", "Detalhe2", "Observacao", "Complemento"),
}
