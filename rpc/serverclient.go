package rpc

// TcpServerClient pairs a server and a client for peers that both expose and
// consume RPC methods, like a worker that serves roll calls while calling
// the coordinator.
type TcpServerClient struct {
	Client TcpClient
	Server TcpServer
}

func NewTcpServerClient(object interface{}, serverAddress string, serverName string, clientAddress string, clientName string) TcpServerClient {
	return TcpServerClient{
		Client: NewTcpClient(clientAddress, clientName),
		Server: NewTcpServer(object, serverAddress, serverName),
	}
}
